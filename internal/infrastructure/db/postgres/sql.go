package postgres

// eventColumns is shared by every event read so scanEvent stays in sync.
const eventColumns = `e.id, e.name, e.description, e.address, e."when", e.organizer_id`

const insertEventSQL = `
INSERT INTO events (name, description, address, "when", organizer_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

const getEventSQL = `
SELECT ` + eventColumns + `
FROM events e WHERE e.id = $1
`

const selectEventForUpdateSQL = `
SELECT ` + eventColumns + `
FROM events e WHERE e.id = $1
FOR UPDATE
`

const updateEventSQL = `
UPDATE events SET
  name=$2, description=$3, address=$4, "when"=$5
WHERE id=$1
`

const deleteEventSQL = `DELETE FROM events WHERE id = $1`

const upsertAttendeeSQL = `
INSERT INTO attendees (event_id, user_id, answer)
VALUES ($1, $2, $3)
ON CONFLICT (event_id, user_id) DO UPDATE SET answer = EXCLUDED.answer
RETURNING id
`

const listAttendeesSQL = `
SELECT id, event_id, user_id, answer
FROM attendees WHERE event_id = $1
ORDER BY id ASC
`

const getAttendeeSQL = `
SELECT id, event_id, user_id, answer
FROM attendees WHERE event_id = $1 AND user_id = $2
`
