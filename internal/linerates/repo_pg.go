package linerates

import (
	"context"
	"database/sql"

	"bottling-backend/internal/schedule"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// LoadAll reads every maintained rate row. Missing combinations are left to
// the caller's sanitization.
func (r *PGRepo) LoadAll(ctx context.Context) (Rates, error) {
	const query = `
SELECT line_id, bottle_size, liters_per_minute
FROM line_rates`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(Rates)
	for rows.Next() {
		var lineID, bottle string
		var rate float64
		if err := rows.Scan(&lineID, &bottle, &rate); err != nil {
			return nil, err
		}
		if _, ok := out[lineID]; !ok {
			out[lineID] = make(map[schedule.BottleSize]float64)
		}
		out[lineID][schedule.BottleSize(bottle)] = rate
	}
	return out, rows.Err()
}

// SaveAll upserts the full rate table in one transaction.
func (r *PGRepo) SaveAll(ctx context.Context, rates Rates) error {
	const query = `
INSERT INTO line_rates (line_id, bottle_size, liters_per_minute)
VALUES ($1, $2, $3)
ON CONFLICT (line_id, bottle_size) DO UPDATE SET liters_per_minute = EXCLUDED.liters_per_minute`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for lineID, perBottle := range rates {
		for bottle, rate := range perBottle {
			if _, err := tx.ExecContext(ctx, query, lineID, string(bottle), rate); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
