package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
)

func newTestService(t *testing.T, opts ...ServiceOption) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db, opts...)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

// noDrop suppresses the artifact roll so completion outcomes are exact.
func noDrop() *Resolver {
	return NewResolver(WithRandSource(func() float64 { return 0.99 }))
}

func alwaysDrop() *Resolver {
	return NewResolver(WithRandSource(func() float64 { return 0.0 }))
}

func mustCreate(t *testing.T, svc *Service, in CreateMissionInput) *storage.Mission {
	t.Helper()
	m, err := svc.CreateMission(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateMission: %v", err)
	}
	return m
}

func TestPlayerLevelFormula(t *testing.T) {
	if got := PlayerLevel(0); got != 1 {
		t.Fatalf("PlayerLevel(0)=%d, want 1", got)
	}
	if got := PlayerLevel(99); got != 1 {
		t.Fatalf("PlayerLevel(99)=%d, want 1", got)
	}
	if got := PlayerLevel(100); got != 2 {
		t.Fatalf("PlayerLevel(100)=%d, want 2", got)
	}
	if got := PlayerLevel(105); got != 2 {
		t.Fatalf("PlayerLevel(105)=%d, want 2", got)
	}
	if got := XPToNextLevel(105); got != 95 {
		t.Fatalf("XPToNextLevel(105)=%d, want 95", got)
	}
	if got := XPToNextLevel(0); got != 100 {
		t.Fatalf("XPToNextLevel(0)=%d, want 100", got)
	}
}

func TestSkillRollover(t *testing.T) {
	sk := &storage.Skill{CategoryID: "work", Level: 0, XP: 90, MaxXP: 100}

	ups, err := ApplySkillXP(sk, 15)
	if err != nil {
		t.Fatalf("ApplySkillXP: %v", err)
	}
	if len(ups) != 1 || ups[0] != 1 {
		t.Fatalf("levelUps=%v, want [1]", ups)
	}
	if sk.Level != 1 || sk.XP != 5 || sk.MaxXP != 110 {
		t.Fatalf("skill=%+v, want level 1, xp 5, maxXp 110", sk)
	}
}

func TestSkillMultipleRollovers(t *testing.T) {
	sk := &storage.Skill{CategoryID: "sport", MaxXP: 100}

	ups, err := ApplySkillXP(sk, 250)
	if err != nil {
		t.Fatalf("ApplySkillXP: %v", err)
	}
	// 250 -> level 1 (xp 150, max 110) -> level 2 (xp 40, max 121)
	if len(ups) != 2 {
		t.Fatalf("levelUps=%v, want two entries", ups)
	}
	if sk.Level != 2 || sk.XP != 40 || sk.MaxXP != 121 {
		t.Fatalf("skill=%+v, want level 2, xp 40, maxXp 121", sk)
	}
}

func TestSkillNegativeAmountRejected(t *testing.T) {
	sk := &storage.Skill{CategoryID: "reading", XP: 10, MaxXP: 100}
	if _, err := ApplySkillXP(sk, -1); err == nil {
		t.Fatalf("expected error for negative amount")
	}
	if sk.XP != 10 {
		t.Fatalf("skill mutated on rejected amount: %+v", sk)
	}
}

func TestApplyPlayerXPSingleCrossing(t *testing.T) {
	p := &storage.Player{TotalXP: 95}
	crossed, err := ApplyPlayerXP(p, 10)
	if err != nil {
		t.Fatalf("ApplyPlayerXP: %v", err)
	}
	if len(crossed) != 1 || crossed[0] != 2 {
		t.Fatalf("crossed=%v, want [2]", crossed)
	}
	if p.TotalXP != 105 || p.Level != 2 {
		t.Fatalf("player=%+v, want totalXP 105 level 2", p)
	}
	if got := XPToNextLevel(p.TotalXP); got != 95 {
		t.Fatalf("XPToNextLevel=%d, want 95", got)
	}
}

func TestApplyPlayerXPCrossedLevels(t *testing.T) {
	p := &storage.Player{TotalXP: 250} // level 3
	crossed, err := ApplyPlayerXP(p, 300)
	if err != nil {
		t.Fatalf("ApplyPlayerXP: %v", err)
	}
	want := []int{4, 5, 6}
	if len(crossed) != len(want) {
		t.Fatalf("crossed=%v, want %v", crossed, want)
	}
	for i := range want {
		if crossed[i] != want[i] {
			t.Fatalf("crossed=%v, want %v", crossed, want)
		}
	}
	if p.Level != 6 || p.TotalXP != 550 {
		t.Fatalf("player=%+v, want level 6, totalXP 550", p)
	}
}

func TestCreateMissionValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateMissionInput
	}{
		{"empty title", CreateMissionInput{Category: "work", XPReward: 10, Type: MissionDaily}},
		{"unknown category", CreateMissionInput{Title: "x", Category: "nope", XPReward: 10, Type: MissionDaily}},
		{"xp too low", CreateMissionInput{Title: "x", Category: "work", XPReward: 0, Type: MissionDaily}},
		{"xp too high", CreateMissionInput{Title: "x", Category: "work", XPReward: 501, Type: MissionDaily}},
		{"timer too short", CreateMissionInput{Title: "x", Category: "work", XPReward: 10, HasTimer: true, EstimatedTime: 4, Type: MissionDaily}},
		{"timer too long", CreateMissionInput{Title: "x", Category: "work", XPReward: 10, HasTimer: true, EstimatedTime: 481, Type: MissionDaily}},
		{"bad type", CreateMissionInput{Title: "x", Category: "work", XPReward: 10, Type: MissionType("hourly")}},
		{"weekly without day", CreateMissionInput{Title: "x", Category: "work", XPReward: 10, Type: MissionWeekly}},
		{"weekly bad day", CreateMissionInput{Title: "x", Category: "work", XPReward: 10, Type: MissionWeekly, WeekDay: "someday"}},
		{"once without date", CreateMissionInput{Title: "x", Category: "work", XPReward: 10, Type: MissionOnce}},
		{"once past date", CreateMissionInput{Title: "x", Category: "work", XPReward: 10, Type: MissionOnce, SpecificDate: "2001-01-01"}},
	}
	for _, tc := range cases {
		if _, err := svc.CreateMission(ctx, tc.in); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		} else {
			var v ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("%s: error %v is not a ValidationError", tc.name, err)
			}
		}
	}

	all, err := svc.MissionRepo().ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected inputs left %d missions behind", len(all))
	}
}

func TestCompleteMissionAwardsXP(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Deep work block", Category: "work", XPReward: 60, Type: MissionDaily,
	})

	res, err := svc.CompleteMission(ctx, m.ID)
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if res.AlreadyDone {
		t.Fatalf("first completion reported AlreadyDone")
	}
	if res.XPAwarded != 60 {
		t.Fatalf("XPAwarded=%d, want 60", res.XPAwarded)
	}
	if res.Skill == nil || res.Skill.XP != 60 || res.Skill.Level != 0 {
		t.Fatalf("skill=%+v, want xp 60 level 0", res.Skill)
	}
	if res.Artifact != nil {
		t.Fatalf("unexpected artifact with suppressed drop roll")
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.TotalXP != 60 {
		t.Fatalf("player totalXP=%d, want 60", p.TotalXP)
	}

	stored, err := svc.MissionRepo().Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if stored.Status != "completed" || stored.CompletedAt == nil {
		t.Fatalf("mission not marked completed: %+v", stored)
	}
}

func TestCompleteMissionIdempotent(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Morning run", Category: "sport", XPReward: 40, Type: MissionDaily,
	})

	if _, err := svc.CompleteMission(ctx, m.ID); err != nil {
		t.Fatalf("first completion: %v", err)
	}
	res, err := svc.CompleteMission(ctx, m.ID)
	if err != nil {
		t.Fatalf("second completion: %v", err)
	}
	if !res.AlreadyDone {
		t.Fatalf("expected AlreadyDone on repeat completion")
	}
	if res.XPAwarded != 0 {
		t.Fatalf("repeat completion awarded %d XP", res.XPAwarded)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.TotalXP != 40 {
		t.Fatalf("player totalXP=%d, want 40 (no double award)", p.TotalXP)
	}
}

func TestCompleteUnknownMission(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.CompleteMission(context.Background(), "missing-id")
	if !IsMissionNotFound(err) {
		t.Fatalf("err=%v, want mission-not-found", err)
	}
}

func TestLevelUpUnlocksStory(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Marathon prep", Category: "sport", XPReward: 150, Type: MissionDaily,
	})

	res, err := svc.CompleteMission(ctx, m.ID)
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if res.PlayerLevelBefore != 1 || res.PlayerLevelAfter != 2 {
		t.Fatalf("level %d -> %d, want 1 -> 2", res.PlayerLevelBefore, res.PlayerLevelAfter)
	}
	if len(res.Unlocks) != 1 || res.Unlocks[0].Level != 2 {
		t.Fatalf("unlocks=%v, want one fragment for level 2", res.Unlocks)
	}

	// The derived level-2 fragment carries one common discovery.
	discoveries, err := svc.CodexRepo().ListDiscoveries(ctx)
	if err != nil {
		t.Fatalf("ListDiscoveries: %v", err)
	}
	if len(discoveries) != 1 {
		t.Fatalf("got %d discoveries, want 1", len(discoveries))
	}
	if discoveries[0].Rarity != "common" {
		t.Fatalf("rarity=%q, want common", discoveries[0].Rarity)
	}
}

func TestArtifactDrop(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(alwaysDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Sketch session", Category: "creation", XPReward: 20, Type: MissionDaily,
	})

	res, err := svc.CompleteMission(ctx, m.ID)
	if err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if res.Artifact == nil {
		t.Fatalf("expected artifact with guaranteed drop roll")
	}
	if res.Artifact.Rarity != "common" {
		t.Fatalf("dropped rarity=%q, want common", res.Artifact.Rarity)
	}

	artifacts, err := svc.CodexRepo().ListArtifacts(ctx)
	if err != nil {
		t.Fatalf("ListArtifacts: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("got %d stored artifacts, want 1", len(artifacts))
	}
}

func TestUnlockForLevelDeterministic(t *testing.T) {
	for _, lvl := range []int{1, 2, 10, 25, 42, 60, 100} {
		a := UnlockForLevel(lvl)
		b := UnlockForLevel(lvl)
		if a.Title != b.Title || a.Content != b.Content {
			t.Fatalf("level %d: repeated resolution differs", lvl)
		}
		if len(a.Discoveries) != len(b.Discoveries) {
			t.Fatalf("level %d: discovery count differs", lvl)
		}
		for i := range a.Discoveries {
			if a.Discoveries[i].Rarity != b.Discoveries[i].Rarity {
				t.Fatalf("level %d: rarity differs", lvl)
			}
		}
	}
}

func TestUnlockRarityRules(t *testing.T) {
	// Outside the curated table: every 20 levels legendary, every 10 rare.
	if got := UnlockForLevel(60).Discoveries[0].Rarity; got != RarityLegendary {
		t.Fatalf("level 60 rarity=%q, want legendary", got)
	}
	if got := UnlockForLevel(30).Discoveries[0].Rarity; got != RarityRare {
		t.Fatalf("level 30 rarity=%q, want rare", got)
	}
	if got := UnlockForLevel(31).Discoveries[0].Rarity; got != RarityCommon {
		t.Fatalf("level 31 rarity=%q, want common", got)
	}
}

func TestCuratedFragments(t *testing.T) {
	f := UnlockForLevel(42)
	if f.Title != "The Announcement" {
		t.Fatalf("level 42 title=%q", f.Title)
	}
	if len(f.Discoveries) != 1 || f.Discoveries[0].Rarity != RarityLegendary {
		t.Fatalf("level 42 discoveries=%v", f.Discoveries)
	}

	f25 := UnlockForLevel(25)
	if len(f25.Artifacts) != 1 || f25.Artifacts[0].Rarity != RarityRare {
		t.Fatalf("level 25 artifacts=%v", f25.Artifacts)
	}
}

func TestGrantPlayerXPBulkImportUnlocks(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	// A bulk grant crossing several levels resolves each one in order.
	p, unlocks, err := svc.GrantPlayerXP(ctx, 450)
	if err != nil {
		t.Fatalf("GrantPlayerXP: %v", err)
	}
	if p.Level != 5 {
		t.Fatalf("level=%d, want 5", p.Level)
	}
	if len(unlocks) != 4 {
		t.Fatalf("got %d unlocks, want 4 (levels 2..5)", len(unlocks))
	}
	for i, f := range unlocks {
		if f.Level != i+2 {
			t.Fatalf("unlock %d for level %d, want %d", i, f.Level, i+2)
		}
	}
}

func TestCreateCategory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "Deep Work", "🌀", "#123456")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c.ID != "deep-work" {
		t.Fatalf("slug=%q, want deep-work", c.ID)
	}

	sk, err := svc.SkillRepo().Get(ctx, "deep-work")
	if err != nil {
		t.Fatalf("get skill: %v", err)
	}
	if sk == nil || sk.Level != 0 || sk.XP != 0 || sk.MaxXP != 100 {
		t.Fatalf("skill=%+v, want fresh track", sk)
	}

	if _, err := svc.CreateCategory(ctx, "deep work", "", ""); err == nil {
		t.Fatalf("expected duplicate rejection")
	}
}

func TestTimerLifecycle(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Focus sprint", Category: "work", XPReward: 30,
		HasTimer: true, EstimatedTime: 5, Type: MissionDaily,
	})

	timer, err := svc.StartTimer(ctx, m.ID)
	if err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	if timer.TimeLeft != 300 || timer.Total != 300 {
		t.Fatalf("timer=%+v, want 300s", timer)
	}

	other := mustCreate(t, svc, CreateMissionInput{
		Title: "Second sprint", Category: "work", XPReward: 30,
		HasTimer: true, EstimatedTime: 10, Type: MissionDaily,
	})
	_, err = svc.StartTimer(ctx, other.ID)
	var busy TimerBusyError
	if !errors.As(err, &busy) {
		t.Fatalf("err=%v, want TimerBusyError", err)
	}
	if busy.MissionID != m.ID {
		t.Fatalf("busy.MissionID=%q, want %q", busy.MissionID, m.ID)
	}
	if got := svc.ActiveTimer(); got == nil || got.MissionID != m.ID || got.TimeLeft != 300 {
		t.Fatalf("running timer disturbed by rejected start: %+v", got)
	}

	res, err := svc.Tick(ctx)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if res.Timer == nil || res.Timer.TimeLeft != 299 {
		t.Fatalf("tick result=%+v, want 299s left", res.Timer)
	}
}

func TestTimerTickToCompletion(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Short focus", Category: "reading", XPReward: 15,
		HasTimer: true, EstimatedTime: 5, Type: MissionDaily,
	})
	if _, err := svc.StartTimer(ctx, m.ID); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}

	var completed *CompleteResult
	for i := 0; i < 300; i++ {
		res, err := svc.Tick(ctx)
		if err != nil {
			t.Fatalf("Tick #%d: %v", i+1, err)
		}
		if res.Completed != nil {
			completed = res.Completed
			break
		}
	}
	if completed == nil {
		t.Fatalf("countdown never completed the mission")
	}
	if completed.XPAwarded != 15 {
		t.Fatalf("XPAwarded=%d, want 15", completed.XPAwarded)
	}
	if svc.ActiveTimer() != nil {
		t.Fatalf("timer slot not cleared after completion")
	}

	// The slot is free for the next session.
	if _, err := svc.Tick(ctx); err != nil {
		t.Fatalf("idle tick: %v", err)
	}
}

func TestAbandonTimer(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	// Abandon with no session is a no-op.
	if err := svc.AbandonTimer(ctx); err != nil {
		t.Fatalf("idle abandon: %v", err)
	}

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Long focus", Category: "work", XPReward: 30,
		HasTimer: true, EstimatedTime: 10, Type: MissionDaily,
	})
	if _, err := svc.StartTimer(ctx, m.ID); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	for i := 0; i < 300; i++ { // half of 600s
		if _, err := svc.Tick(ctx); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if err := svc.AbandonTimer(ctx); err != nil {
		t.Fatalf("AbandonTimer: %v", err)
	}
	if svc.ActiveTimer() != nil {
		t.Fatalf("timer slot not cleared after abandon")
	}

	stored, err := svc.MissionRepo().Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get mission: %v", err)
	}
	if stored.Status != "pending" {
		t.Fatalf("abandon completed the mission: %+v", stored)
	}
	if stored.Progress != 50 {
		t.Fatalf("progress=%d, want 50", stored.Progress)
	}

	p, err := svc.PlayerRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if p.TotalXP != 0 {
		t.Fatalf("abandon granted XP: %d", p.TotalXP)
	}
}

func TestStartTimerRequiresTimer(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "No timer here", Category: "work", XPReward: 10, Type: MissionDaily,
	})
	if _, err := svc.StartTimer(ctx, m.ID); err == nil {
		t.Fatalf("expected rejection for timerless mission")
	}
}

func TestCompletionClearsOwnTimer(t *testing.T) {
	svc, cleanup := newTestService(t, WithResolver(noDrop()))
	defer cleanup()
	ctx := context.Background()

	m := mustCreate(t, svc, CreateMissionInput{
		Title: "Focus then done", Category: "work", XPReward: 10,
		HasTimer: true, EstimatedTime: 5, Type: MissionDaily,
	})
	if _, err := svc.StartTimer(ctx, m.ID); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	if _, err := svc.CompleteMission(ctx, m.ID); err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	if svc.ActiveTimer() != nil {
		t.Fatalf("direct completion left the timer running")
	}
}

func TestParseWeekDay(t *testing.T) {
	if got := ParseWeekDay(" Monday "); got != "monday" {
		t.Fatalf("ParseWeekDay(Monday)=%q", got)
	}
	if got := ParseWeekDay("someday"); got != "" {
		t.Fatalf("ParseWeekDay(someday)=%q, want empty", got)
	}
}

func TestCategorySlug(t *testing.T) {
	cases := map[string]string{
		"Deep Work":     "deep-work",
		"  Sport  ":     "sport",
		"Côté Création": "côté-création",
		"a++b":          "a-b",
		"--x--":         "x",
	}
	for in, want := range cases {
		if got := CategorySlug(in); got != want {
			t.Fatalf("CategorySlug(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestWeekDayName(t *testing.T) {
	// 2026-08-30 is a Sunday.
	d := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if got := WeekDayName(d); got != "sunday" {
		t.Fatalf("WeekDayName(sunday)=%q", got)
	}
	if got := WeekDayName(d.AddDate(0, 0, 1)); got != "monday" {
		t.Fatalf("WeekDayName(monday)=%q", got)
	}
}
