// Package aggregate derives leaderboard rankings, mentor progress and
// per-team comment rosters from the raw review set. Every function here is
// pure and deterministic; malformed input rows are skipped, never raised, so
// a partial dataset still renders.
package aggregate

import (
	"math"
	"sort"

	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/internal/domain/rubric"
)

// unknownMentorName labels comments whose author is missing from the roster.
const unknownMentorName = "Unknown Mentor"

// round2 is the single rounding rule shared by the form preview and the
// leaderboard, so the two can never disagree.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// WeightedScore computes sum(score*weight) over non-null scores, rounded to
// two decimals. Scores referencing unknown criteria are ignored. An empty or
// all-null slice yields 0, never NaN, so incomplete reviews cannot poison a
// recompute.
func WeightedScore(rb *rubric.Rubric, scores []model.CriterionScore) float64 {
	var total float64
	for _, cs := range scores {
		if cs.Score == nil {
			continue
		}
		w, ok := rb.Weight(cs.CriterionID)
		if !ok {
			continue
		}
		total += float64(*cs.Score) * w
	}
	return round2(total)
}

type teamBucket struct {
	scores    []float64
	reviewers []model.ReviewerScore
	total     int
}

// Leaderboard ranks teams by average weighted score across completed reviews.
// Incomplete reviews count toward the reviewer total but not the average.
// Teams with no completed reviews average 0 and still appear. The sort is
// stable: ties keep the original team order.
func Leaderboard(rb *rubric.Rubric, teams []model.Team, reviews []model.Review, mentors []model.Mentor) []model.LeaderboardEntry {
	nameByMentor := make(map[string]string, len(mentors))
	for _, m := range mentors {
		nameByMentor[m.ID] = m.Name
	}

	buckets := make(map[string]*teamBucket, len(teams))
	for _, r := range reviews {
		b := buckets[r.TeamID]
		if b == nil {
			b = &teamBucket{}
			buckets[r.TeamID] = b
		}
		b.total++
		if !r.IsCompleted {
			continue
		}
		ws := WeightedScore(rb, r.Scores)
		b.scores = append(b.scores, ws)
		// A missing mentor drops the reviewer row but never the score.
		if name, ok := nameByMentor[r.MentorID]; ok {
			b.reviewers = append(b.reviewers, model.ReviewerScore{Name: name, Score: ws})
		}
	}

	entries := make([]model.LeaderboardEntry, 0, len(teams))
	for _, team := range teams {
		entry := model.LeaderboardEntry{Team: team}
		if b, ok := buckets[team.ID]; ok {
			var sum float64
			for _, s := range b.scores {
				sum += s
			}
			if len(b.scores) > 0 {
				entry.AverageScore = round2(sum / float64(len(b.scores)))
			}
			entry.Reviewers = b.reviewers
			entry.CompletedReviews = len(b.scores)
			entry.TotalReviews = b.total
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AverageScore > entries[j].AverageScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Progress reports completed/total review counts per mentor. A mentor with
// no assignments reports 0/0.
func Progress(mentors []model.Mentor, reviews []model.Review) []model.MentorProgress {
	out := make([]model.MentorProgress, 0, len(mentors))
	for _, m := range mentors {
		p := model.MentorProgress{Mentor: m}
		for _, r := range reviews {
			if r.MentorID != m.ID {
				continue
			}
			p.TotalReviews++
			if r.IsCompleted {
				p.CompletedReviews++
			}
		}
		out = append(out, p)
	}
	return out
}

// Comments lists every reviewer comment per team, completed or not, reusing
// the leaderboard's rank and team order. Comments are sorted by mentor name
// ascending; authors missing from the roster render as "Unknown Mentor".
func Comments(entries []model.LeaderboardEntry, reviews []model.Review, mentors []model.Mentor) []model.TeamComments {
	nameByMentor := make(map[string]string, len(mentors))
	for _, m := range mentors {
		nameByMentor[m.ID] = m.Name
	}

	out := make([]model.TeamComments, 0, len(entries))
	for _, entry := range entries {
		tc := model.TeamComments{Rank: entry.Rank, Team: entry.Team}
		for _, r := range reviews {
			if r.TeamID != entry.Team.ID {
				continue
			}
			name, ok := nameByMentor[r.MentorID]
			if !ok {
				name = unknownMentorName
			}
			tc.Comments = append(tc.Comments, model.MentorComment{
				MentorName: name,
				Comment:    r.Comment,
			})
		}
		sort.Slice(tc.Comments, func(i, j int) bool {
			return tc.Comments[i].MentorName < tc.Comments[j].MentorName
		})
		out = append(out, tc)
	}
	return out
}
