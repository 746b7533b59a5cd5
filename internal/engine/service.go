package engine

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/pkg/logger"
)

// Service owns the progression state: player, skills, missions and the codex.
// All mutation goes through its methods; the repos persist every change
// immediately. The focus timer slot is the only transient state.
type Service struct {
	db         *sql.DB
	players    *storage.PlayerRepo
	skills     *storage.SkillRepo
	missions   *storage.MissionRepo
	categories *storage.CategoryRepo
	codex      *storage.CodexRepo

	resolver *Resolver
	now      func() time.Time
	log      logger.Logger

	// timer is the single ActiveTimer slot; at most one focus session runs
	// at a time.
	timer *ActiveTimer
}

type ServiceOption func(*Service)

func WithResolver(r *Resolver) ServiceOption {
	return func(s *Service) { s.resolver = r }
}

func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func WithLogger(l logger.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

func NewService(db *sql.DB, opts ...ServiceOption) *Service {
	s := &Service{
		db:         db,
		players:    storage.NewPlayerRepo(db),
		skills:     storage.NewSkillRepo(db),
		missions:   storage.NewMissionRepo(db),
		categories: storage.NewCategoryRepo(db),
		codex:      storage.NewCodexRepo(db),
		now:        time.Now,
		log:        logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = NewResolver(WithClock(s.now))
	}
	return s
}

func (s *Service) PlayerRepo() *storage.PlayerRepo     { return s.players }
func (s *Service) SkillRepo() *storage.SkillRepo       { return s.skills }
func (s *Service) MissionRepo() *storage.MissionRepo   { return s.missions }
func (s *Service) CategoryRepo() *storage.CategoryRepo { return s.categories }
func (s *Service) CodexRepo() *storage.CodexRepo       { return s.codex }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "is required"}
	}
	return t, nil
}

func (s *Service) getPlayer(ctx context.Context) (*storage.Player, error) {
	p, err := s.players.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	computed := PlayerLevel(p.TotalXP)
	if p.Level != computed {
		p.Level = computed
		if err := s.players.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// CreateCategory registers a new user category and its fresh skill track.
func (s *Service) CreateCategory(ctx context.Context, name, icon, color string) (*storage.Category, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, ValidationError{Field: "name", Reason: "is required"}
	}
	id := CategorySlug(n)
	if id == "" {
		return nil, ValidationError{Field: "name", Reason: "must contain letters or digits"}
	}

	existing, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ValidationError{Field: "name", Reason: "category already exists: " + id}
	}

	c := storage.Category{ID: id, Name: n, Icon: icon, Color: color}
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	if _, err := s.skills.GetOrCreate(ctx, id); err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "category created", logger.String("id", id))
	return &c, nil
}

// GrantSkillXP applies XP to one skill track and persists the result.
// Exposed for bulk import paths; mission completion goes through
// CompleteMission.
func (s *Service) GrantSkillXP(ctx context.Context, categoryID string, amount int) (*storage.Skill, []int, error) {
	sk, err := s.skills.GetOrCreate(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	levelUps, err := ApplySkillXP(sk, amount)
	if err != nil {
		return nil, nil, err
	}
	if err := s.skills.Update(ctx, sk); err != nil {
		return nil, nil, err
	}
	return sk, levelUps, nil
}

// GrantPlayerXP applies XP to the player and resolves unlocks for every
// crossed level, in ascending order. Unlock resolution is a ledger side
// effect: any XP path triggers it, not just mission completion.
func (s *Service) GrantPlayerXP(ctx context.Context, amount int) (*storage.Player, []StoryFragment, error) {
	p, err := s.getPlayer(ctx)
	if err != nil {
		return nil, nil, err
	}
	crossed, err := ApplyPlayerXP(p, amount)
	if err != nil {
		return nil, nil, err
	}
	if err := s.players.Update(ctx, p); err != nil {
		return nil, nil, err
	}

	unlocks := s.resolver.Unlocks(crossed)
	for _, f := range unlocks {
		if _, _, err := s.appendUnlock(ctx, f); err != nil {
			return nil, nil, err
		}
	}
	if len(crossed) > 0 {
		s.log.Debug(ctx, "player leveled up",
			logger.Int("from", crossed[0]-1), logger.Int("to", p.Level))
	}
	return p, unlocks, nil
}

func (s *Service) appendUnlock(ctx context.Context, f StoryFragment) ([]storage.Discovery, []storage.Artifact, error) {
	discoveries, artifacts := s.resolver.MaterializeUnlock(f)
	for _, d := range discoveries {
		if err := s.codex.InsertDiscovery(ctx, d); err != nil {
			return nil, nil, err
		}
	}
	for _, a := range artifacts {
		if err := s.codex.InsertArtifact(ctx, a); err != nil {
			return nil, nil, err
		}
	}
	return discoveries, artifacts, nil
}

var errMissionNotFound = errors.New("mission not found")

func (s *Service) getMission(ctx context.Context, id string) (*storage.Mission, error) {
	m, err := s.missions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errMissionNotFound
	}
	return m, nil
}

// IsMissionNotFound reports whether err is the unknown-mission condition.
func IsMissionNotFound(err error) bool {
	return errors.Is(err, errMissionNotFound)
}
