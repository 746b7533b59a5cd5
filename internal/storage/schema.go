package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT 'Chercheur',
			level INTEGER DEFAULT 1,
			total_xp INTEGER DEFAULT 0,
			health INTEGER DEFAULT 100,
			energy INTEGER DEFAULT 100
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT DEFAULT '',
			color TEXT DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			category_id TEXT PRIMARY KEY,
			level INTEGER DEFAULT 0,
			xp INTEGER DEFAULT 0,
			max_xp INTEGER DEFAULT 100,
			FOREIGN KEY(category_id) REFERENCES categories(id)
		);`,
		`CREATE TABLE IF NOT EXISTS missions (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			category_id TEXT NOT NULL,

			xp_reward INTEGER NOT NULL,
			has_timer INTEGER DEFAULT 0,
			estimated_time INTEGER DEFAULT 0,

			type TEXT NOT NULL,
			week_day TEXT,
			specific_date DATETIME,

			status TEXT DEFAULT 'pending',
			progress INTEGER DEFAULT 0,
			completed_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

			FOREIGN KEY(category_id) REFERENCES categories(id)
		);`,
		// Discoveries and artifacts are append-only narrative records.
		`CREATE TABLE IF NOT EXISTS discoveries (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			rarity TEXT NOT NULL,
			unlocked_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS artifacts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT DEFAULT '',
			rarity TEXT NOT NULL,
			found_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status);`,
		`CREATE INDEX IF NOT EXISTS idx_missions_category ON missions(category_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return seedDefaults(ctx, db)
}

// defaultCategories is the starting registry; users may add more.
var defaultCategories = []Category{
	{ID: "work", Name: "Work", Icon: "🧠", Color: "#3b82f6"},
	{ID: "sport", Name: "Sport", Icon: "💪", Color: "#ef4444"},
	{ID: "creation", Name: "Creation", Icon: "💡", Color: "#f59e0b"},
	{ID: "reading", Name: "Reading", Icon: "📚", Color: "#10b981"},
	{ID: "adaptability", Name: "Adaptability", Icon: "⚡", Color: "#8b5cf6"},
}

func seedDefaults(ctx context.Context, db *sql.DB) error {
	for _, c := range defaultCategories {
		if _, err := db.ExecContext(ctx, `
			INSERT OR IGNORE INTO categories (id, name, icon, color) VALUES (?, ?, ?, ?)
		`, c.ID, c.Name, c.Icon, c.Color); err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
		if _, err := db.ExecContext(ctx, `
			INSERT OR IGNORE INTO skills (category_id) VALUES (?)
		`, c.ID); err != nil {
			return fmt.Errorf("seed skill: %w", err)
		}
	}
	return nil
}
