package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type MissionRepo struct {
	db *sql.DB
}

func NewMissionRepo(db *sql.DB) *MissionRepo {
	return &MissionRepo{db: db}
}

func (r *MissionRepo) Insert(ctx context.Context, m Mission) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO missions (
			id, title, description, category_id,
			xp_reward, has_timer, estimated_time,
			type, week_day, specific_date,
			status, progress, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Title, m.Description, m.CategoryID,
		m.XPReward, boolToInt(m.HasTimer), m.EstimatedTime,
		m.Type, m.WeekDay, m.SpecificDate,
		m.Status, m.Progress, m.CompletedAt)
	if err != nil {
		return fmt.Errorf("mission insert: %w", err)
	}
	return nil
}

func (r *MissionRepo) Get(ctx context.Context, id string) (*Mission, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, category_id, xp_reward, has_timer, estimated_time,
			type, week_day, specific_date, status, progress, completed_at, created_at
		FROM missions
		WHERE id = ?
	`, id)

	return scanMissionRow(row)
}

func (r *MissionRepo) ListAll(ctx context.Context) ([]Mission, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, category_id, xp_reward, has_timer, estimated_time,
			type, week_day, specific_date, status, progress, completed_at, created_at
		FROM missions
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("mission list: %w", err)
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		m, err := scanMissionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mission rows: %w", err)
	}
	return out, nil
}

func (r *MissionRepo) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE missions SET status = 'completed', progress = 100, completed_at = ? WHERE id = ?
	`, completedAt, id)
	if err != nil {
		return fmt.Errorf("mission mark completed: %w", err)
	}
	return nil
}

// ResetPending reopens a recurring mission for its next due date.
func (r *MissionRepo) ResetPending(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE missions SET status = 'pending', progress = 0, completed_at = NULL WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("mission reset pending: %w", err)
	}
	return nil
}

func (r *MissionRepo) UpdateProgress(ctx context.Context, id string, progress int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE missions SET progress = ? WHERE id = ?`, progress, id)
	if err != nil {
		return fmt.Errorf("mission update progress: %w", err)
	}
	return nil
}

func (r *MissionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM missions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mission delete: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMissionRow(row scanner) (*Mission, error) {
	var (
		m            Mission
		hasTimer     int
		weekDay      sql.NullString
		specificDate sql.NullTime
		completedAt  sql.NullTime
	)

	if err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.CategoryID, &m.XPReward, &hasTimer, &m.EstimatedTime,
		&m.Type, &weekDay, &specificDate, &m.Status, &m.Progress, &completedAt, &m.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("mission scan: %w", err)
	}

	m.HasTimer = hasTimer != 0
	if weekDay.Valid {
		v := weekDay.String
		m.WeekDay = &v
	}
	if specificDate.Valid {
		v := specificDate.Time
		m.SpecificDate = &v
	}
	if completedAt.Valid {
		v := completedAt.Time
		m.CompletedAt = &v
	}
	return &m, nil
}
