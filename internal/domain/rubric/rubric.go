// Package rubric defines the immutable scoring rubric: an ordered list of
// weighted criteria fixed at process start.
package rubric

import (
	"github.com/okian/mentorboard/internal/domain/model"
)

// Score bounds for a single criterion.
const (
	MinScore = 1
	MaxScore = 5
)

// Criterion is one weighted dimension of the rubric. Weights are expected to
// approximate a sum of 1 so the weighted total reads on a 1-5 scale.
type Criterion struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Rubric holds the ordered criterion list. Criteria are never created or
// destroyed at runtime.
type Rubric struct {
	criteria []Criterion
	index    map[string]int
}

// New builds a rubric from an ordered criterion list.
func New(criteria []Criterion) (*Rubric, error) {
	if len(criteria) == 0 {
		return nil, ErrNoCriteria
	}
	index := make(map[string]int, len(criteria))
	for i, c := range criteria {
		if c.ID == "" {
			return nil, ErrBlankCriterionID
		}
		if _, dup := index[c.ID]; dup {
			return nil, ErrDuplicateCriterion
		}
		if c.Weight <= 0 {
			return nil, ErrInvalidWeight
		}
		index[c.ID] = i
	}
	r := &Rubric{
		criteria: make([]Criterion, len(criteria)),
		index:    index,
	}
	copy(r.criteria, criteria)
	return r, nil
}

// Default returns the proposal-review rubric used when no criteria are
// configured. Weights sum to 1.
func Default() *Rubric {
	r, err := New([]Criterion{
		{ID: "c1", Name: "Problem Clarity", Weight: 0.20},
		{ID: "c2", Name: "Structure of Policy Proposal", Weight: 0.10},
		{ID: "c3", Name: "Solution Innovativeness & Feasibility", Weight: 0.30},
		{ID: "c4", Name: "Potential Impact", Weight: 0.25},
		{ID: "c5", Name: "Clarity of Implementation Plan", Weight: 0.10},
		{ID: "c6", Name: "Overall Presentation", Weight: 0.05},
	})
	if err != nil {
		panic(err)
	}
	return r
}

// Criteria returns the ordered criterion list as a copy.
func (r *Rubric) Criteria() []Criterion {
	out := make([]Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// Len returns the number of criteria.
func (r *Rubric) Len() int {
	return len(r.criteria)
}

// Weight returns the weight for a criterion id.
func (r *Rubric) Weight(id string) (float64, bool) {
	i, ok := r.index[id]
	if !ok {
		return 0, false
	}
	return r.criteria[i].Weight, true
}

// Contains reports whether id names a criterion of this rubric.
func (r *Rubric) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// BlankScores returns one null score per criterion, in rubric order. This is
// the score set of a freshly assigned review.
func (r *Rubric) BlankScores() []model.CriterionScore {
	out := make([]model.CriterionScore, len(r.criteria))
	for i, c := range r.criteria {
		out[i] = model.NullScore(c.ID)
	}
	return out
}

// Normalize repairs an arbitrary score slice into the exact criterion set:
// unknown criterion ids are dropped, missing ids are synthesized as null,
// out-of-range values are nulled, duplicates keep the first occurrence, and
// rubric order is restored. Storage may hand back malformed arrays; callers
// run every loaded or submitted score set through here.
func (r *Rubric) Normalize(scores []model.CriterionScore) []model.CriterionScore {
	byID := make(map[string]*int, len(scores))
	for _, cs := range scores {
		if !r.Contains(cs.CriterionID) {
			continue
		}
		if _, seen := byID[cs.CriterionID]; seen {
			continue
		}
		if cs.Score != nil && (*cs.Score < MinScore || *cs.Score > MaxScore) {
			byID[cs.CriterionID] = nil
			continue
		}
		byID[cs.CriterionID] = cs.Score
	}
	out := make([]model.CriterionScore, len(r.criteria))
	for i, c := range r.criteria {
		out[i] = model.CriterionScore{CriterionID: c.ID}
		if v, ok := byID[c.ID]; ok && v != nil {
			score := *v
			out[i].Score = &score
		}
	}
	return out
}

// Complete reports whether every criterion of the rubric carries a non-null
// score. The input is expected to be normalized.
func (r *Rubric) Complete(scores []model.CriterionScore) bool {
	graded := make(map[string]bool, len(scores))
	for _, cs := range scores {
		if cs.Score != nil && r.Contains(cs.CriterionID) {
			graded[cs.CriterionID] = true
		}
	}
	return len(graded) == len(r.criteria)
}
