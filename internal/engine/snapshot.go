package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/pkg/logger"
)

// EngineState is the serializable view of every persisted collection.
// Field names match the on-disk layout consumed by other frontends.
type EngineState struct {
	Player      PlayerState           `json:"player"`
	Skills      map[string]SkillState `json:"skills"`
	Missions    []MissionState        `json:"missions"`
	Discoveries []DiscoveryState      `json:"discoveries"`
	Artifacts   []ArtifactState       `json:"artifacts"`
	Categories  []CategoryState       `json:"categories"`
}

// PlayerState carries gauges as pointers so a snapshot can distinguish an
// absent gauge (defaults to full) from a legitimately empty one.
type PlayerState struct {
	Name    string `json:"name"`
	Level   int    `json:"level"`
	TotalXP int    `json:"totalXP"`
	Health  *int   `json:"health,omitempty"`
	Energy  *int   `json:"energy,omitempty"`
}

type SkillState struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
	MaxXP int `json:"maxXp"`
}

type MissionState struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category"`
	XPReward      int        `json:"xpReward"`
	HasTimer      bool       `json:"hasTimer"`
	EstimatedTime int        `json:"estimatedTime,omitempty"`
	Type          string     `json:"type"`
	WeekDay       *string    `json:"weekDay,omitempty"`
	SpecificDate  *time.Time `json:"specificDate,omitempty"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

type DiscoveryState struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Rarity      string    `json:"rarity"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

type ArtifactState struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Rarity      string    `json:"rarity"`
	FoundAt     time.Time `json:"foundAt"`
}

type CategoryState struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// Serialize reads every collection and renders the JSON snapshot.
func (s *Service) Serialize(ctx context.Context) ([]byte, error) {
	p, err := s.getPlayer(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.skills.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	missions, err := s.missions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	discoveries, err := s.codex.ListDiscoveries(ctx)
	if err != nil {
		return nil, err
	}
	artifacts, err := s.codex.ListArtifacts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	state := EngineState{
		Player: PlayerState{
			Name: p.Name, Level: p.Level, TotalXP: p.TotalXP,
			Health: &p.Health, Energy: &p.Energy,
		},
		Skills: make(map[string]SkillState, len(skills)),
	}
	for _, sk := range skills {
		state.Skills[sk.CategoryID] = SkillState{Level: sk.Level, XP: sk.XP, MaxXP: sk.MaxXP}
	}
	for _, m := range missions {
		state.Missions = append(state.Missions, MissionState{
			ID: m.ID, Title: m.Title, Description: m.Description,
			Category: m.CategoryID, XPReward: m.XPReward,
			HasTimer: m.HasTimer, EstimatedTime: m.EstimatedTime,
			Type: m.Type, WeekDay: m.WeekDay, SpecificDate: m.SpecificDate,
			Status: m.Status, Progress: m.Progress, CompletedDate: m.CompletedAt,
		})
	}
	for _, d := range discoveries {
		state.Discoveries = append(state.Discoveries, DiscoveryState{
			ID: d.ID, Title: d.Title, Description: d.Description,
			Rarity: d.Rarity, UnlockedAt: d.UnlockedAt,
		})
	}
	for _, a := range artifacts {
		state.Artifacts = append(state.Artifacts, ArtifactState{
			ID: a.ID, Name: a.Name, Description: a.Description,
			Rarity: a.Rarity, FoundAt: a.FoundAt,
		})
	}
	for _, c := range categories {
		state.Categories = append(state.Categories, CategoryState{
			ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color,
		})
	}

	return json.MarshalIndent(state, "", "  ")
}

// Hydrate replaces the stored state with a snapshot. Malformed or missing
// fields fall back to defaults per entity instead of failing: a broken blob
// hydrates to a fresh first-run state, never a fatal error. The replacement
// is transactional.
func (s *Service) Hydrate(ctx context.Context, blob []byte) error {
	var state EngineState
	if err := json.Unmarshal(blob, &state); err != nil {
		s.log.Warn(ctx, "malformed snapshot, falling back to defaults", logger.Error(err))
		state = EngineState{}
	}
	normalizeState(&state)

	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM missions`, `DELETE FROM discoveries`, `DELETE FROM artifacts`,
			`DELETE FROM skills`, `DELETE FROM categories`, `DELETE FROM player`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO player (key, name, level, total_xp, health, energy) VALUES (?, ?, ?, ?, ?, ?)
		`, storage.MainPlayerKey, state.Player.Name, state.Player.Level, state.Player.TotalXP,
			*state.Player.Health, *state.Player.Energy); err != nil {
			return err
		}

		for _, c := range state.Categories {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO categories (id, name, icon, color) VALUES (?, ?, ?, ?)
			`, c.ID, c.Name, c.Icon, c.Color); err != nil {
				return err
			}
		}
		for id, sk := range state.Skills {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO skills (category_id, level, xp, max_xp) VALUES (?, ?, ?, ?)
			`, id, sk.Level, sk.XP, sk.MaxXP); err != nil {
				return err
			}
		}
		for _, m := range state.Missions {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO missions (
					id, title, description, category_id, xp_reward, has_timer, estimated_time,
					type, week_day, specific_date, status, progress, completed_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, m.ID, m.Title, m.Description, m.Category, m.XPReward, m.HasTimer, m.EstimatedTime,
				m.Type, m.WeekDay, m.SpecificDate, m.Status, m.Progress, m.CompletedDate); err != nil {
				return err
			}
		}
		for _, d := range state.Discoveries {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO discoveries (id, title, description, rarity, unlocked_at) VALUES (?, ?, ?, ?, ?)
			`, d.ID, d.Title, d.Description, d.Rarity, d.UnlockedAt); err != nil {
				return err
			}
		}
		for _, a := range state.Artifacts {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO artifacts (id, name, description, rarity, found_at) VALUES (?, ?, ?, ?, ?)
			`, a.ID, a.Name, a.Description, a.Rarity, a.FoundAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Hydrating must always reach a usable state: re-seed the default
	// registry if the snapshot carried no categories at all.
	return storage.Migrate(ctx, s.db)
}

// normalizeState applies the documented per-entity defaults to a decoded
// snapshot: gauges clamp to 0..100 (absent gauges fill to 100), levels and
// thresholds to their minimums, and entities missing required fields or
// referencing unknown categories are dropped.
func normalizeState(state *EngineState) {
	p := &state.Player
	if p.Name == "" {
		p.Name = "Chercheur"
	}
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	p.Level = PlayerLevel(p.TotalXP)
	p.Health = normalizeGauge(p.Health)
	p.Energy = normalizeGauge(p.Energy)

	known := make(map[string]bool, len(state.Categories))
	kept := state.Categories[:0]
	for _, c := range state.Categories {
		if c.ID == "" {
			continue
		}
		if c.Name == "" {
			c.Name = c.ID
		}
		known[c.ID] = true
		kept = append(kept, c)
	}
	state.Categories = kept

	if state.Skills == nil {
		state.Skills = map[string]SkillState{}
	}
	for id, sk := range state.Skills {
		if !known[id] {
			delete(state.Skills, id)
			continue
		}
		if sk.Level < 0 {
			sk.Level = 0
		}
		if sk.MaxXP <= 0 {
			sk.MaxXP = SkillBaseMaxXP
		}
		if sk.XP < 0 || sk.XP >= sk.MaxXP {
			sk.XP = 0
		}
		state.Skills[id] = sk
	}

	missions := state.Missions[:0]
	for _, m := range state.Missions {
		if m.Title == "" || !known[m.Category] {
			continue
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if !MissionType(m.Type).IsValid() {
			m.Type = string(MissionDaily)
		}
		if m.XPReward < MinXPReward {
			m.XPReward = MinXPReward
		}
		if m.Status != string(StatusCompleted) {
			m.Status = string(StatusPending)
		}
		if m.Progress < 0 {
			m.Progress = 0
		}
		if m.Progress > 100 {
			m.Progress = 100
		}
		missions = append(missions, m)
	}
	state.Missions = missions
}

// normalizeGauge clamps a present gauge to 0..100; an absent gauge fills to
// the full default. Zero is a valid value and is preserved.
func normalizeGauge(v *int) *int {
	n := 100
	if v != nil {
		n = *v
		if n < 0 {
			n = 0
		}
		if n > 100 {
			n = 100
		}
	}
	return &n
}
