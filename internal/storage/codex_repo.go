package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// CodexRepo holds the append-only narrative collections: discoveries and
// artifacts. Rows are inserted once and never updated.
type CodexRepo struct {
	db *sql.DB
}

func NewCodexRepo(db *sql.DB) *CodexRepo {
	return &CodexRepo{db: db}
}

func (r *CodexRepo) InsertDiscovery(ctx context.Context, d Discovery) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO discoveries (id, title, description, rarity, unlocked_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.Title, d.Description, d.Rarity, d.UnlockedAt)
	if err != nil {
		return fmt.Errorf("discovery insert: %w", err)
	}
	return nil
}

func (r *CodexRepo) InsertArtifact(ctx context.Context, a Artifact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, name, description, rarity, found_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Description, a.Rarity, a.FoundAt)
	if err != nil {
		return fmt.Errorf("artifact insert: %w", err)
	}
	return nil
}

func (r *CodexRepo) ListDiscoveries(ctx context.Context) ([]Discovery, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, rarity, unlocked_at
		FROM discoveries
		ORDER BY unlocked_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("discovery list: %w", err)
	}
	defer rows.Close()

	var out []Discovery
	for rows.Next() {
		var d Discovery
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Rarity, &d.UnlockedAt); err != nil {
			return nil, fmt.Errorf("discovery scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("discovery rows: %w", err)
	}
	return out, nil
}

func (r *CodexRepo) ListArtifacts(ctx context.Context) ([]Artifact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, rarity, found_at
		FROM artifacts
		ORDER BY found_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("artifact list: %w", err)
	}
	defer rows.Close()

	var out []Artifact
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Rarity, &a.FoundAt); err != nil {
			return nil, fmt.Errorf("artifact scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("artifact rows: %w", err)
	}
	return out, nil
}
