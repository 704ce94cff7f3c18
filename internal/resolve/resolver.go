package resolve

import (
	"sort"

	"github.com/litmap/litmap/internal/model"
)

// Resolver collapses the raw candidate set for one sentence into a minimal,
// non-overlapping selection. Overlap handling is greedy interval scheduling:
// longest span first, then highest confidence, then lowest tier number.
// Identical spans produced by several tiers collapse to the single
// highest-confidence tier this way, since later duplicates overlap the
// accepted one.
type Resolver struct{}

// NewResolver creates a new span resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the accepted candidates in sentence order. No two spans in
// the result overlap by even one byte.
func (r *Resolver) Resolve(candidates []model.Candidate) []model.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	ordered := make([]model.Candidate, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Length() != ordered[j].Length() {
			return ordered[i].Length() > ordered[j].Length()
		}
		if ordered[i].Confidence != ordered[j].Confidence {
			return ordered[i].Confidence > ordered[j].Confidence
		}
		return ordered[i].Tier < ordered[j].Tier
	})

	var accepted []model.Candidate
	for _, cand := range ordered {
		if !overlapsAny(accepted, cand) {
			accepted = append(accepted, cand)
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

func overlapsAny(accepted []model.Candidate, cand model.Candidate) bool {
	for _, a := range accepted {
		if a.Overlaps(cand) {
			return true
		}
	}
	return false
}
