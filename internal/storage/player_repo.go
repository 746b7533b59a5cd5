package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainPlayerKey = "main_user"

type PlayerRepo struct {
	db *sql.DB
}

func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) Get(ctx context.Context, key string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, name, level, total_xp, health, energy FROM player WHERE key = ?`, key)

	var p Player
	if err := row.Scan(&p.Key, &p.Name, &p.Level, &p.TotalXP, &p.Health, &p.Energy); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	return &p, nil
}

// GetOrCreateMain returns the single local player, creating the first-run
// defaults (level 1, 0 XP, full gauges) when absent.
func (r *PlayerRepo) GetOrCreateMain(ctx context.Context) (*Player, error) {
	p, err := r.Get(ctx, MainPlayerKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO player (key) VALUES (?)`, MainPlayerKey); err != nil {
		return nil, fmt.Errorf("player insert: %w", err)
	}
	return r.Get(ctx, MainPlayerKey)
}

func (r *PlayerRepo) Update(ctx context.Context, p *Player) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE player
		SET name = ?, level = ?, total_xp = ?, health = ?, energy = ?
		WHERE key = ?
	`, p.Name, p.Level, p.TotalXP, p.Health, p.Energy, p.Key)
	if err != nil {
		return fmt.Errorf("player update: %w", err)
	}
	return nil
}
