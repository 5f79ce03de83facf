package sqlinline

const userColumns = `
  id::text,
  email,
  coalesce(full_name, ''),
  role,
  created_at,
  updated_at`

const QListUsers = `--sql ce40e71a-33d5-4e5f-bda6-bc749005c9f0
select` + userColumns + `
from profiles
where ($1::timestamptz is null or created_at >= $1)
  and ($2::timestamptz is null or created_at < $2)
  and ($3::text = '' or role = $3)
  and ($4::text = '' or full_name ilike '%' || $4 || '%' or email ilike '%' || $4 || '%')
order by created_at desc
limit nullif($5::int, 0);
`

const QSelectUserByID = `--sql 197592c6-aacb-4e4a-a805-18fe5ec06783
select` + userColumns + `
from profiles
where id = $1::uuid
limit 1;
`

const QSelectUserByEmail = `--sql 83a97f17-66b7-444d-88e9-17b0ce6ccee6
select` + userColumns + `
from profiles
where lower(email) = lower($1::text)
limit 1;
`

const QUpdateUserRole = `--sql e4ef72e3-d555-4e7b-b075-82d18fa339d1
update profiles
set role = $2::text, updated_at = now()
where id = $1::uuid
returning` + userColumns + `;
`
