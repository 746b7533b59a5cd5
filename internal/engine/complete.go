package engine

import (
	"context"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
	"github.com/polochon-xp/app-le-lapin-blanc-sub000/pkg/logger"
)

type CompleteResult struct {
	MissionID   string
	XPAwarded   int
	AlreadyDone bool

	Skill         *storage.Skill
	SkillLevelUps []int

	PlayerLevelBefore int
	PlayerLevelAfter  int
	Unlocks           []StoryFragment

	Artifact *storage.Artifact
}

// CompleteMission finishes a mission: marks it completed, awards the frozen
// XP to the mission's category skill and to the player, resolves unlocks for
// each crossed level in ascending order, rolls the artifact drop, and clears
// the focus timer if it pointed at this mission.
//
// Completing an already-completed mission is a silent no-op: the unchanged
// state is returned and no XP is awarded twice.
func (s *Service) CompleteMission(ctx context.Context, id string) (*CompleteResult, error) {
	m, err := s.getMission(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.getPlayer(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := p.Level

	if m.Status == string(StatusCompleted) {
		return &CompleteResult{
			MissionID:         m.ID,
			AlreadyDone:       true,
			PlayerLevelBefore: levelBefore,
			PlayerLevelAfter:  levelBefore,
		}, nil
	}

	reward := s.resolver.ResolveCompletion(m)

	now := s.now()
	if err := s.missions.MarkCompleted(ctx, m.ID, now); err != nil {
		return nil, err
	}

	sk, skillUps, err := s.GrantSkillXP(ctx, m.CategoryID, reward.XPDelta)
	if err != nil {
		return nil, err
	}

	p, unlocks, err := s.GrantPlayerXP(ctx, reward.XPDelta)
	if err != nil {
		return nil, err
	}

	if reward.Artifact != nil {
		if err := s.codex.InsertArtifact(ctx, *reward.Artifact); err != nil {
			return nil, err
		}
	}

	if s.timer != nil && s.timer.MissionID == m.ID {
		s.timer = nil
	}

	s.log.Debug(ctx, "mission completed",
		logger.String("id", m.ID), logger.Int("xp", reward.XPDelta))

	return &CompleteResult{
		MissionID:         m.ID,
		XPAwarded:         reward.XPDelta,
		Skill:             sk,
		SkillLevelUps:     skillUps,
		PlayerLevelBefore: levelBefore,
		PlayerLevelAfter:  p.Level,
		Unlocks:           unlocks,
		Artifact:          reward.Artifact,
	}, nil
}
