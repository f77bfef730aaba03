// Package export renders aggregation outputs to delimited text for offline
// consumption. Quoting follows RFC 4180: fields containing a comma, a double
// quote or a newline are wrapped in double quotes with inner quotes doubled.
package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/mentorboard/internal/domain/model"
)

// Export file name prefixes.
const (
	RankingsPrefix = "team_rankings"
	CommentsPrefix = "team_comments"
)

// DelimitedText renders headers plus rows as CSV. Output is deterministic
// given deterministic input.
func DelimitedText(headers []string, rows [][]string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if len(headers) > 0 {
		_ = w.Write(headers)
	}
	_ = w.WriteAll(rows) // WriteAll flushes
	return b.String()
}

// Rankings renders the leaderboard: one row per team.
func Rankings(entries []model.LeaderboardEntry) string {
	headers := []string{"Rank", "Team Name", "Candidate ID", "Average Score", "Completed Reviews", "Total Reviews"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Rank),
			e.Team.Name,
			e.Team.CandidateID,
			strconv.FormatFloat(e.AverageScore, 'f', 2, 64),
			strconv.Itoa(e.CompletedReviews),
			strconv.Itoa(e.TotalReviews),
		})
	}
	return DelimitedText(headers, rows)
}

// Comments renders reviewer comments: one row per mentor-comment pair, so a
// team with several reviewers produces several rows.
func Comments(data []model.TeamComments) string {
	headers := []string{"Rank", "Team Name", "Candidate ID", "Mentor Name", "Comment"}
	var rows [][]string
	for _, tc := range data {
		for _, c := range tc.Comments {
			rows = append(rows, []string{
				strconv.Itoa(tc.Rank),
				tc.Team.Name,
				tc.Team.CandidateID,
				c.MentorName,
				c.Comment,
			})
		}
	}
	return DelimitedText(headers, rows)
}

// Filename builds a download name with an ISO date stamp, e.g.
// team_rankings_2024-05-01.csv.
func Filename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, t.Format("2006-01-02"))
}
