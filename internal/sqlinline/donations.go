package sqlinline

const QInsertDonation = `--sql b50085f9-b179-4b4b-b606-2d6bca5282c6
insert into donations(
  id, user_id, donor_name, donor_email, amount, currency, program,
  status, payment_method, message, anonymous, country, created_at, updated_at
) values (
  gen_random_uuid(),
  nullif($1::text, '')::uuid,
  $2::text,
  $3::text,
  $4::numeric,
  $5::text,
  $6::text,
  'pending',
  $7::text,
  $8::text,
  $9::boolean,
  $10::text,
  now(),
  now()
)
returning id::text, status, created_at, updated_at;
`

const donationColumns = `
  id::text,
  user_id::text,
  donor_name,
  donor_email,
  amount::float8,
  currency,
  coalesce(program, ''),
  status,
  coalesce(payment_method, ''),
  coalesce(message, ''),
  anonymous,
  coalesce(country, ''),
  created_at,
  updated_at`

const QListDonations = `--sql 703fc227-bf2c-4603-867a-6bf6c3a63669
select` + donationColumns + `
from donations
where ($1::timestamptz is null or created_at >= $1)
  and ($2::timestamptz is null or created_at < $2)
  and ($3::text = '' or status = $3)
  and ($4::text = '' or program = $4)
  and ($5::text = '' or donor_name ilike '%' || $5 || '%' or donor_email ilike '%' || $5 || '%')
order by created_at desc
limit nullif($6::int, 0);
`

const QListDonationsByUser = `--sql 8b84f501-465b-47df-81bb-9371ae7b0075
select` + donationColumns + `
from donations
where user_id = $1::uuid
order by created_at desc;
`

const QUpdateDonationStatus = `--sql d6536552-8903-418a-96f7-d16bb005a084
update donations
set status = $2::text, updated_at = now()
where id = $1::uuid
  and status = any($3::text[])
returning` + donationColumns + `;
`

const QDonationExists = `--sql c2c1007b-2795-4deb-9817-3c47dce3d217
select exists(select 1 from donations where id = $1::uuid);
`
