package sqlinline

const QInsertVolunteer = `--sql 96fcac08-7153-488d-824f-a6dbbbc233ab
insert into volunteers(
  id, user_id, name, email, phone, skills, availability, message, status, created_at, updated_at
) values (
  gen_random_uuid(),
  nullif($1::text, '')::uuid,
  $2::text,
  $3::text,
  $4::text,
  $5::text[],
  $6::text,
  $7::text,
  'pending',
  now(),
  now()
)
returning id::text, status, created_at, updated_at;
`

const volunteerColumns = `
  id::text,
  user_id::text,
  name,
  email,
  coalesce(phone, ''),
  coalesce(skills, '{}'::text[]),
  coalesce(availability, ''),
  coalesce(message, ''),
  status,
  created_at,
  updated_at`

const QListVolunteers = `--sql 289b7abe-39bf-4331-9938-09cd561089e9
select` + volunteerColumns + `
from volunteers
where ($1::timestamptz is null or created_at >= $1)
  and ($2::timestamptz is null or created_at < $2)
  and ($3::text = '' or status = $3)
  and ($4::text = '' or name ilike '%' || $4 || '%' or email ilike '%' || $4 || '%')
order by created_at desc
limit nullif($5::int, 0);
`

const QUpdateVolunteerStatus = `--sql a42f3b98-6092-478a-8c7a-cfb0e82e6663
update volunteers
set status = $2::text, updated_at = now()
where id = $1::uuid
  and status = any($3::text[])
returning` + volunteerColumns + `;
`

const QVolunteerExists = `--sql 992a4d54-755d-4b02-b17e-41052e90de1a
select exists(select 1 from volunteers where id = $1::uuid);
`
