package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// snapshotID keys the single authoritative plan row.
const snapshotID = "current"

// PGRepo implements Repo using Postgres. The plan is stored as one JSONB
// snapshot row that round-trips every order and mixer-block field.
type PGRepo struct {
	DB *sql.DB
}

// Load reads the current plan snapshot. A missing row yields an empty plan.
func (r *PGRepo) Load(ctx context.Context) (Plan, error) {
	const query = `
SELECT payload
FROM schedule_snapshots
WHERE id = $1`

	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, snapshotID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Plan{}, nil
		}
		return Plan{}, err
	}

	var plan Plan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Save upserts the plan snapshot.
func (r *PGRepo) Save(ctx context.Context, plan Plan) error {
	const query = `
INSERT INTO schedule_snapshots (id, payload, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`

	payload, err := json.Marshal(plan)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query, snapshotID, payload, time.Now().UTC())
	return err
}
