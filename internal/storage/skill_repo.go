package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type SkillRepo struct {
	db *sql.DB
}

func NewSkillRepo(db *sql.DB) *SkillRepo {
	return &SkillRepo{db: db}
}

func (r *SkillRepo) Get(ctx context.Context, categoryID string) (*Skill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT category_id, level, xp, max_xp FROM skills WHERE category_id = ?`, categoryID)

	var s Skill
	if err := row.Scan(&s.CategoryID, &s.Level, &s.XP, &s.MaxXP); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("skill get: %w", err)
	}
	return &s, nil
}

// GetOrCreate returns the skill track for a category, creating the
// {level:0, xp:0, maxXp:100} default row when absent.
func (r *SkillRepo) GetOrCreate(ctx context.Context, categoryID string) (*Skill, error) {
	s, err := r.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO skills (category_id) VALUES (?)`, categoryID); err != nil {
		return nil, fmt.Errorf("skill insert: %w", err)
	}
	return r.Get(ctx, categoryID)
}

func (r *SkillRepo) Update(ctx context.Context, s *Skill) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE skills
		SET level = ?, xp = ?, max_xp = ?
		WHERE category_id = ?
	`, s.Level, s.XP, s.MaxXP, s.CategoryID)
	if err != nil {
		return fmt.Errorf("skill update: %w", err)
	}
	return nil
}

func (r *SkillRepo) ListAll(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category_id, level, xp, max_xp FROM skills ORDER BY category_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("skill list: %w", err)
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.CategoryID, &s.Level, &s.XP, &s.MaxXP); err != nil {
			return nil, fmt.Errorf("skill scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill rows: %w", err)
	}
	return out, nil
}
