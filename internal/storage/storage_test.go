package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return &testDB{
		players:    NewPlayerRepo(db),
		skills:     NewSkillRepo(db),
		missions:   NewMissionRepo(db),
		categories: NewCategoryRepo(db),
		codex:      NewCodexRepo(db),
	}
}

type testDB struct {
	players    *PlayerRepo
	skills     *SkillRepo
	missions   *MissionRepo
	categories *CategoryRepo
	codex      *CodexRepo
}

func TestMigrateSeedsDefaults(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	categories, err := d.categories.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(categories) != 5 {
		t.Fatalf("got %d categories, want 5", len(categories))
	}

	seen := map[string]bool{}
	for _, c := range categories {
		seen[c.ID] = true
	}
	for _, id := range []string{"work", "sport", "creation", "reading", "adaptability"} {
		if !seen[id] {
			t.Fatalf("default category %q missing", id)
		}
	}

	skills, err := d.skills.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll skills: %v", err)
	}
	if len(skills) != 5 {
		t.Fatalf("got %d skill tracks, want 5", len(skills))
	}
	for _, sk := range skills {
		if sk.Level != 0 || sk.XP != 0 || sk.MaxXP != 100 {
			t.Fatalf("skill %q=%+v, want fresh track", sk.CategoryID, sk)
		}
	}
}

func TestPlayerGetOrCreateMain(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	p, err := d.players.GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("GetOrCreateMain: %v", err)
	}
	if p.Key != MainPlayerKey || p.Name != "Chercheur" {
		t.Fatalf("player=%+v", p)
	}
	if p.Level != 1 || p.TotalXP != 0 || p.Health != 100 || p.Energy != 100 {
		t.Fatalf("player defaults wrong: %+v", p)
	}

	p.TotalXP = 180
	p.Level = 2
	if err := d.players.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again, err := d.players.GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("GetOrCreateMain again: %v", err)
	}
	if again.TotalXP != 180 || again.Level != 2 {
		t.Fatalf("update not persisted: %+v", again)
	}
}

func TestMissionRoundTripWithNullables(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	day := "friday"
	date := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)

	weekly := Mission{
		ID: "m-weekly", Title: "Weekly review", CategoryID: "work",
		XPReward: 50, Type: "weekly", WeekDay: &day, Status: "pending",
	}
	once := Mission{
		ID: "m-once", Title: "Ship release", Description: "v1.0", CategoryID: "work",
		XPReward: 200, HasTimer: true, EstimatedTime: 90,
		Type: "once", SpecificDate: &date, Status: "pending",
	}
	for _, m := range []Mission{weekly, once} {
		if err := d.missions.Insert(ctx, m); err != nil {
			t.Fatalf("Insert %s: %v", m.ID, err)
		}
	}

	got, err := d.missions.Get(ctx, "m-weekly")
	if err != nil {
		t.Fatalf("Get weekly: %v", err)
	}
	if got.WeekDay == nil || *got.WeekDay != "friday" {
		t.Fatalf("weekly day=%v", got.WeekDay)
	}
	if got.SpecificDate != nil || got.CompletedAt != nil {
		t.Fatalf("weekly has unexpected dates: %+v", got)
	}

	got, err = d.missions.Get(ctx, "m-once")
	if err != nil {
		t.Fatalf("Get once: %v", err)
	}
	if got.SpecificDate == nil || !got.SpecificDate.Equal(date) {
		t.Fatalf("once date=%v, want %v", got.SpecificDate, date)
	}
	if !got.HasTimer || got.EstimatedTime != 90 {
		t.Fatalf("timer fields lost: %+v", got)
	}

	done := time.Date(2026, 12, 24, 18, 30, 0, 0, time.UTC)
	if err := d.missions.MarkCompleted(ctx, "m-once", done); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	got, _ = d.missions.Get(ctx, "m-once")
	if got.Status != "completed" || got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Fatalf("completion not recorded: %+v", got)
	}

	if err := d.missions.ResetPending(ctx, "m-once"); err != nil {
		t.Fatalf("ResetPending: %v", err)
	}
	got, _ = d.missions.Get(ctx, "m-once")
	if got.Status != "pending" || got.CompletedAt != nil || got.Progress != 0 {
		t.Fatalf("reset incomplete: %+v", got)
	}

	if err := d.missions.Delete(ctx, "m-once"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err = d.missions.Get(ctx, "m-once")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("mission survived delete: %+v", got)
	}
}

func TestSkillGetOrCreate(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	sk, err := d.skills.GetOrCreate(ctx, "music")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if sk.Level != 0 || sk.XP != 0 || sk.MaxXP != 100 {
		t.Fatalf("fresh skill=%+v", sk)
	}

	sk.Level = 3
	sk.XP = 42
	sk.MaxXP = 133
	if err := d.skills.Update(ctx, sk); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again, err := d.skills.Get(ctx, "music")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again == nil || again.Level != 3 || again.XP != 42 || again.MaxXP != 133 {
		t.Fatalf("skill not persisted: %+v", again)
	}
}

func TestCodexAppendOnly(t *testing.T) {
	d := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	if err := d.codex.InsertDiscovery(ctx, Discovery{
		ID: "d1", Title: "Lab-7 Recording", Rarity: "rare", UnlockedAt: now,
	}); err != nil {
		t.Fatalf("InsertDiscovery: %v", err)
	}
	if err := d.codex.InsertArtifact(ctx, Artifact{
		ID: "a1", Name: "Access Badge", Rarity: "legendary", FoundAt: now,
	}); err != nil {
		t.Fatalf("InsertArtifact: %v", err)
	}

	discoveries, err := d.codex.ListDiscoveries(ctx)
	if err != nil {
		t.Fatalf("ListDiscoveries: %v", err)
	}
	if len(discoveries) != 1 || discoveries[0].Title != "Lab-7 Recording" {
		t.Fatalf("discoveries=%v", discoveries)
	}

	artifacts, err := d.codex.ListArtifacts(ctx)
	if err != nil {
		t.Fatalf("ListArtifacts: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Rarity != "legendary" {
		t.Fatalf("artifacts=%v", artifacts)
	}
}
