package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/polochon-xp/app-le-lapin-blanc-sub000/internal/storage"
)

// ArtifactDropRate is the probability of finding an artifact on completion.
const ArtifactDropRate = 0.30

// RandSource supplies uniform floats in [0, 1). Injectable so artifact rolls
// are deterministic under test.
type RandSource func() float64

// Resolver computes the rewards of a completed mission: the fixed XP delta,
// a probabilistic artifact drop, and level-indexed unlocks.
type Resolver struct {
	rand  RandSource
	now   func() time.Time
	newID func() string
}

type ResolverOption func(*Resolver)

func WithRandSource(r RandSource) ResolverOption {
	return func(res *Resolver) { res.rand = r }
}

func WithClock(now func() time.Time) ResolverOption {
	return func(res *Resolver) { res.now = now }
}

func WithIDGenerator(gen func() string) ResolverOption {
	return func(res *Resolver) { res.newID = gen }
}

func NewResolver(opts ...ResolverOption) *Resolver {
	res := &Resolver{
		rand:  rand.Float64,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// CompletionReward is the outcome of resolving one mission completion.
// XPDelta is always the mission's fixed reward; Artifact is nil unless the
// drop roll succeeded.
type CompletionReward struct {
	XPDelta  int
	Artifact *storage.Artifact
}

// ResolveCompletion computes the reward for a completed mission. The XP delta
// is the reward frozen at creation time; nothing is recomputed retroactively.
func (r *Resolver) ResolveCompletion(m *storage.Mission) CompletionReward {
	reward := CompletionReward{XPDelta: m.XPReward}

	if r.rand() < ArtifactDropRate {
		now := r.now()
		reward.Artifact = &storage.Artifact{
			ID:          r.newID(),
			Name:        "Unknown Artifact",
			Description: "A mysterious object recovered during the mission.",
			Rarity:      string(RarityCommon),
			FoundAt:     now,
		}
	}
	return reward
}

// Unlocks resolves the content for a batch of level-up events. Levels must be
// supplied in ascending order and are processed strictly in that order.
func (r *Resolver) Unlocks(levels []int) []StoryFragment {
	out := make([]StoryFragment, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, UnlockForLevel(lvl))
	}
	return out
}

// MaterializeUnlock stamps a fragment's narrative payloads into storable rows.
func (r *Resolver) MaterializeUnlock(f StoryFragment) ([]storage.Discovery, []storage.Artifact) {
	now := r.now()

	var discoveries []storage.Discovery
	for _, d := range f.Discoveries {
		discoveries = append(discoveries, storage.Discovery{
			ID:          r.newID(),
			Title:       d.Title,
			Description: d.Description,
			Rarity:      string(d.Rarity),
			UnlockedAt:  now,
		})
	}

	var artifacts []storage.Artifact
	for _, a := range f.Artifacts {
		artifacts = append(artifacts, storage.Artifact{
			ID:          r.newID(),
			Name:        a.Name,
			Description: a.Description,
			Rarity:      string(a.Rarity),
			FoundAt:     now,
		})
	}
	return discoveries, artifacts
}
