package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mangwale-cart/logger"
	"mangwale-cart/models"
)

// ResolverConfig holds the scoring thresholds. Scores are in [0, ~1.1]:
// exact name match scores 1.0 before boosts, fuzzy matches score by token
// overlap.
type ResolverConfig struct {
	AcceptScore   float64  // single candidate at or above this resolves
	FloorScore    float64  // below this a candidate is discarded
	AmbiguityBand float64  // top-two gap smaller than this is ambiguous
	TopN          int      // candidates returned on ambiguity
	FillerWords   []string // stripped from mentions before matching
}

// DefaultResolverConfig returns the thresholds used in production.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		AcceptScore:   0.6,
		FloorScore:    0.3,
		AmbiguityBand: 0.08,
		TopN:          5,
		FillerWords:   []string{"a", "an", "the", "some", "please", "ek"},
	}
}

const (
	recommendedBoost = 0.05
	organicBoost     = 0.03
)

// ResolverService maps mention text to catalog candidates using the search
// index. It is a read-only client of the index.
type ResolverService struct {
	index SearchIndexInterface
	cfg   ResolverConfig
}

// NewResolverService creates a new ResolverService
func NewResolverService(index SearchIndexInterface, cfg ResolverConfig) *ResolverService {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultResolverConfig().TopN
	}
	return &ResolverService{index: index, cfg: cfg}
}

// Ensure ResolverService implements ResolverServiceInterface
var _ ResolverServiceInterface = (*ResolverService)(nil)

// Resolve maps one mention to ranked candidates. Store scoping is a hard
// constraint: zero hits in the scoped store is not_found, never a fallback
// to an unscoped search.
func (s *ResolverService) Resolve(ctx context.Context, mention string, rctx models.ResolveContext) (*models.Resolution, error) {
	normalized := s.normalize(mention)
	if normalized == "" {
		return &models.Resolution{Status: models.ResolutionNotFound}, nil
	}

	moduleID := int64(0)
	if rctx.ModuleID != nil {
		moduleID = *rctx.ModuleID
	}
	index := s.index.IndexFor(moduleID)

	hits, err := s.index.Search(ctx, index, models.SearchQuery{
		Text:     normalized,
		StoreID:  rctx.StoreID,
		ModuleID: rctx.ModuleID,
		Limit:    s.cfg.TopN * 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query search index: %w", err)
	}

	candidates := s.score(normalized, hits)
	resolution := s.classify(candidates)

	logger.Get().Debugf("🔍 Resolve %q: %d hits -> %s", mention, len(hits), resolution.Status)
	return resolution, nil
}

// normalize lowercases, trims and strips configured filler words.
func (s *ResolverService) normalize(mention string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(mention)))
	kept := fields[:0]
	for _, f := range fields {
		filler := false
		for _, w := range s.cfg.FillerWords {
			if f == w {
				filler = true
				break
			}
		}
		if !filler {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// score ranks hits deterministically: exact name match scores 1.0, fuzzy
// matches score by token overlap, then recommended/organic boosts, with
// order_count and id as tie-breaks.
func (s *ResolverService) score(normalized string, hits []models.SearchHit) []models.Candidate {
	mentionTokens := strings.Fields(normalized)

	type scored struct {
		candidate  models.Candidate
		orderCount int64
	}

	var ranked []scored
	for _, hit := range hits {
		doc := hit.Document

		var base float64
		if strings.ToLower(strings.TrimSpace(doc.Name)) == normalized {
			base = 1.0
		} else {
			base = tokenOverlap(mentionTokens, strings.Fields(strings.ToLower(doc.Name)))
		}

		score := base
		if doc.Recommended {
			score += recommendedBoost
		}
		if doc.Organic {
			score += organicBoost
		}

		if score < s.cfg.FloorScore {
			continue
		}
		ranked = append(ranked, scored{
			candidate: models.Candidate{
				ItemID:    doc.ID,
				Name:      doc.Name,
				StoreID:   doc.StoreID,
				StoreName: doc.StoreName,
				ModuleID:  doc.ModuleID,
				Price:     doc.Price,
				Score:     score,
			},
			orderCount: doc.OrderCount,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].candidate.Score != ranked[j].candidate.Score {
			return ranked[i].candidate.Score > ranked[j].candidate.Score
		}
		if ranked[i].orderCount != ranked[j].orderCount {
			return ranked[i].orderCount > ranked[j].orderCount
		}
		return ranked[i].candidate.ItemID < ranked[j].candidate.ItemID
	})

	candidates := make([]models.Candidate, 0, len(ranked))
	for _, r := range ranked {
		candidates = append(candidates, r.candidate)
	}
	return candidates
}

// classify applies the acceptance threshold and ambiguity band.
func (s *ResolverService) classify(candidates []models.Candidate) *models.Resolution {
	if len(candidates) == 0 {
		return &models.Resolution{Status: models.ResolutionNotFound}
	}

	top := candidates[0]
	if top.Score >= s.cfg.AcceptScore {
		if len(candidates) == 1 || top.Score-candidates[1].Score > s.cfg.AmbiguityBand {
			return &models.Resolution{
				Status:     models.ResolutionResolved,
				Candidates: candidates[:1],
			}
		}
	}

	n := s.cfg.TopN
	if n > len(candidates) {
		n = len(candidates)
	}
	return &models.Resolution{
		Status:     models.ResolutionAmbiguous,
		Candidates: candidates[:n],
	}
}

// tokenOverlap is the share of mention tokens found in the name, scaled down
// when the name carries many extra tokens.
func tokenOverlap(mention, name []string) float64 {
	if len(mention) == 0 || len(name) == 0 {
		return 0
	}
	nameSet := make(map[string]bool, len(name))
	for _, t := range name {
		nameSet[t] = true
	}
	matched := 0
	for _, t := range mention {
		if nameSet[t] {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	longer := len(mention)
	if len(name) > longer {
		longer = len(name)
	}
	return float64(matched) / float64(longer)
}
