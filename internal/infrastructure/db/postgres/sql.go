package postgres

const insertEventSQL = `
INSERT INTO events (
  id, owner_id, title, notes, event_date, locations,
  archived, archived_at, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6::jsonb,$7,$8,$9,$10)
`

const getEventSQL = `
SELECT id, owner_id, title, notes, event_date, locations,
       archived, archived_at, created_at, updated_at
FROM events WHERE id = $1
`

const updateEventSQL = `
UPDATE events SET
  title=$2, notes=$3, event_date=$4, locations=$5::jsonb,
  archived=$6, archived_at=$7, updated_at=$8
WHERE id=$1
`

const deleteEventSQL = `
DELETE FROM events WHERE id = $1
`

const listEventsSQL = `
SELECT id, owner_id, title, notes, event_date, locations,
       archived, archived_at, created_at, updated_at
FROM events
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

// listAllEventsSQL feeds reconciliation: every event, archived included,
// in a stable order.
const listAllEventsSQL = `
SELECT id, owner_id, title, notes, event_date, locations,
       archived, archived_at, created_at, updated_at
FROM events
ORDER BY created_at ASC, id ASC
`
