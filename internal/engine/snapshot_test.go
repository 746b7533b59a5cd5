package engine

import (
	"context"
	"encoding/json"
	"testing"
)

func intp(v int) *int { return &v }

func TestSerializeHydrateRoundTrip(t *testing.T) {
	src, cleanupSrc := newTestService(t, WithResolver(noDrop()))
	defer cleanupSrc()
	ctx := context.Background()

	m := mustCreate(t, src, CreateMissionInput{
		Title: "Decode the signal", Category: "work", XPReward: 120,
		HasTimer: true, EstimatedTime: 30, Type: MissionDaily,
	})
	if _, err := src.CompleteMission(ctx, m.ID); err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if _, err := src.CreateCategory(ctx, "Music", "🎵", "#abcdef"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	blob, err := src.Serialize(ctx)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	dst, cleanupDst := newTestService(t)
	defer cleanupDst()
	if err := dst.Hydrate(ctx, blob); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	p, err := dst.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.TotalXP != 120 || p.Level != 2 {
		t.Fatalf("player=%+v, want totalXP 120 level 2", p)
	}

	sk, err := dst.SkillRepo().Get(ctx, "work")
	if err != nil {
		t.Fatalf("get skill: %v", err)
	}
	if sk == nil || sk.Level != 1 || sk.XP != 20 || sk.MaxXP != 110 {
		t.Fatalf("skill=%+v, want level 1, xp 20, maxXp 110", sk)
	}

	stored, err := dst.MissionRepo().Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if stored == nil || stored.Status != "completed" || stored.XPReward != 120 {
		t.Fatalf("mission=%+v", stored)
	}

	c, err := dst.CategoryRepo().Get(ctx, "music")
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if c == nil || c.Name != "Music" {
		t.Fatalf("custom category lost: %+v", c)
	}

	discoveries, err := dst.CodexRepo().ListDiscoveries(ctx)
	if err != nil {
		t.Fatalf("ListDiscoveries: %v", err)
	}
	if len(discoveries) != 1 {
		t.Fatalf("got %d discoveries after hydrate, want 1", len(discoveries))
	}
}

func TestHydrateMalformedFallsBackToDefaults(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "To be wiped", Category: "sport", XPReward: 10, Type: MissionDaily,
	})
	if _, err := svc.CompleteMission(ctx, m.ID); err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}

	if err := svc.Hydrate(ctx, []byte("{not json")); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.TotalXP != 0 || p.Level != 1 || p.Name != "Chercheur" {
		t.Fatalf("player=%+v, want fresh defaults", p)
	}
	if p.Health != 100 || p.Energy != 100 {
		t.Fatalf("gauges=%d/%d, want 100/100", p.Health, p.Energy)
	}

	missions, err := svc.MissionRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(missions) != 0 {
		t.Fatalf("malformed hydrate kept %d missions", len(missions))
	}

	// The default category registry is re-seeded.
	categories, err := svc.CategoryRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll categories: %v", err)
	}
	if len(categories) != 5 {
		t.Fatalf("got %d categories after fallback, want 5", len(categories))
	}
}

func TestHydrateNormalizesPartialSnapshot(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	state := EngineState{
		Player: PlayerState{Name: "Neo", TotalXP: 230, Health: intp(-5), Energy: intp(300)},
		Skills: map[string]SkillState{
			"work":  {Level: -2, XP: -10, MaxXP: 0},
			"ghost": {Level: 1, XP: 5, MaxXP: 110}, // dropped: no such category
		},
		Categories: []CategoryState{
			{ID: "work", Name: "Work"},
			{ID: ""}, // dropped: no id
		},
		Missions: []MissionState{
			{Title: "Valid", Category: "work", XPReward: 10, Type: "daily", Status: "pending"},
			{Title: "", Category: "work", XPReward: 10, Type: "daily"},     // dropped: no title
			{Title: "Orphan", Category: "ghost", XPReward: 10, Type: "x"}, // dropped: unknown category
		},
	}
	blob, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := svc.Hydrate(ctx, blob); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Level != 3 { // recomputed from totalXP, not trusted from the blob
		t.Fatalf("level=%d, want 3", p.Level)
	}
	if p.Health != 0 || p.Energy != 100 {
		t.Fatalf("gauges=%d/%d, want clamped to 0 and 100", p.Health, p.Energy)
	}

	sk, err := svc.SkillRepo().Get(ctx, "work")
	if err != nil {
		t.Fatalf("get skill: %v", err)
	}
	if sk == nil || sk.Level != 0 || sk.XP != 0 || sk.MaxXP != 100 {
		t.Fatalf("skill=%+v, want reset to base values", sk)
	}

	ghost, err := svc.SkillRepo().Get(ctx, "ghost")
	if err != nil {
		t.Fatalf("get ghost skill: %v", err)
	}
	if ghost != nil {
		t.Fatalf("orphan skill row survived hydration: %+v", ghost)
	}

	missions, err := svc.MissionRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(missions) != 1 || missions[0].Title != "Valid" {
		t.Fatalf("missions=%v, want only the valid one", missions)
	}
	if missions[0].ID == "" {
		t.Fatalf("hydrated mission got no generated id")
	}
}

func TestHydrateGaugeZeroPreservedAbsentFilled(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	state := EngineState{
		Player: PlayerState{Name: "Morpheus", Health: intp(0)}, // energy absent
	}
	blob, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := svc.Hydrate(ctx, blob); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.Health != 0 {
		t.Fatalf("health=%d, want 0 (zero is a valid gauge value)", p.Health)
	}
	if p.Energy != 100 {
		t.Fatalf("energy=%d, want 100 (absent gauge fills to full)", p.Energy)
	}
}
