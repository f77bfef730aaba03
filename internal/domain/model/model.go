// Package model contains domain models passed between layers.
package model

// CriterionScore holds one rubric criterion's score within a review.
// A nil Score means the criterion has not been graded yet.
type CriterionScore struct {
	CriterionID string `json:"criterionId"`
	Score       *int   `json:"score"`
}

// ScoreOf is a convenience constructor for a graded criterion score.
func ScoreOf(criterionID string, score int) CriterionScore {
	return CriterionScore{CriterionID: criterionID, Score: &score}
}

// NullScore is a convenience constructor for an ungraded criterion score.
func NullScore(criterionID string) CriterionScore {
	return CriterionScore{CriterionID: criterionID}
}

// Team represents a proposal team under review. Teams are created by an
// administrator and immutable afterwards.
type Team struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CandidateID     string `json:"candidate_id"`
	ProposalDetails string `json:"proposalDetails"`
	ProposalLink    string `json:"proposal_link,omitempty"`
}

// Mentor represents a reviewer. The ID matches the external identity
// provider's user id. IsInternal marks administrators.
type Mentor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsInternal bool   `json:"isInternal"`
}

// Review is one mentor's scoring record for one team. At most one review
// exists per (TeamID, MentorID) pair.
type Review struct {
	ID          int64            `json:"id"`
	TeamID      string           `json:"teamId"`
	MentorID    string           `json:"mentorId"`
	Scores      []CriterionScore `json:"scores"`
	IsCompleted bool             `json:"isCompleted"`
	Comment     string           `json:"comment"`
}

// Clone returns a deep copy of the review. Score pointers are duplicated so
// mutations on the copy never reach the original; rollback snapshots depend
// on this.
func (r Review) Clone() Review {
	out := r
	out.Scores = CloneScores(r.Scores)
	return out
}

// CloneScores deep-copies a criterion score slice.
func CloneScores(scores []CriterionScore) []CriterionScore {
	if scores == nil {
		return nil
	}
	out := make([]CriterionScore, len(scores))
	for i, cs := range scores {
		out[i] = cs
		if cs.Score != nil {
			v := *cs.Score
			out[i].Score = &v
		}
	}
	return out
}

// CloneReviews deep-copies a review slice.
func CloneReviews(reviews []Review) []Review {
	if reviews == nil {
		return nil
	}
	out := make([]Review, len(reviews))
	for i, r := range reviews {
		out[i] = r.Clone()
	}
	return out
}

// ReviewerScore pairs a reviewer's display name with their weighted score.
type ReviewerScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// LeaderboardEntry is a derived, non-persisted ranking row for one team.
type LeaderboardEntry struct {
	Rank             int             `json:"rank"`
	Team             Team            `json:"team"`
	AverageScore     float64         `json:"averageScore"`
	Reviewers        []ReviewerScore `json:"reviewers"`
	CompletedReviews int             `json:"completedReviews"`
	TotalReviews     int             `json:"totalReviews"`
}

// MentorProgress is a derived view of one mentor's review completion.
type MentorProgress struct {
	Mentor           Mentor `json:"mentor"`
	CompletedReviews int    `json:"completedReviews"`
	TotalReviews     int    `json:"totalReviews"`
}

// Percent returns completion as a whole percentage. A mentor with zero
// assigned reviews reports 0, never a division by zero.
func (p MentorProgress) Percent() int {
	if p.TotalReviews == 0 {
		return 0
	}
	return int(float64(p.CompletedReviews) / float64(p.TotalReviews) * 100)
}

// MentorComment pairs a mentor's display name with their review comment.
type MentorComment struct {
	MentorName string `json:"mentorName"`
	Comment    string `json:"comment"`
}

// TeamComments lists every reviewer comment for one team, ordered by mentor
// name. Rank and team ordering mirror the leaderboard.
type TeamComments struct {
	Rank     int             `json:"rank"`
	Team     Team            `json:"team"`
	Comments []MentorComment `json:"comments"`
}
