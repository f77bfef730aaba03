package export_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mentorboard/internal/domain/export"
	"github.com/okian/mentorboard/internal/domain/model"
)

func TestRankings(t *testing.T) {
	Convey("Given a two-entry leaderboard", t, func() {
		entries := []model.LeaderboardEntry{
			{
				Rank:             1,
				Team:             model.Team{ID: "t1", Name: "Alpha", CandidateID: "CAND-0001"},
				AverageScore:     4.5,
				CompletedReviews: 2,
				TotalReviews:     3,
			},
			{
				Rank:             2,
				Team:             model.Team{ID: "t2", Name: "Beta, the \"bold\"", CandidateID: "CAND-0002"},
				AverageScore:     3,
				CompletedReviews: 1,
				TotalReviews:     1,
			},
		}

		Convey("When rendered as CSV", func() {
			out := export.Rankings(entries)

			Convey("Then it parses back into header plus one row per team", func() {
				records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0], ShouldResemble, []string{"Rank", "Team Name", "Candidate ID", "Average Score", "Completed Reviews", "Total Reviews"})
				So(records[1], ShouldResemble, []string{"1", "Alpha", "CAND-0001", "4.50", "2", "3"})
			})

			Convey("Then the score always carries two decimals", func() {
				So(out, ShouldContainSubstring, "3.00")
			})

			Convey("Then a name with comma and quotes survives the round trip", func() {
				records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
				So(err, ShouldBeNil)
				So(records[2][1], ShouldEqual, "Beta, the \"bold\"")
			})
		})
	})
}

func TestComments(t *testing.T) {
	Convey("Given one team with two reviewer comments", t, func() {
		data := []model.TeamComments{
			{
				Rank: 1,
				Team: model.Team{ID: "t1", Name: "Alpha", CandidateID: "CAND-0001"},
				Comments: []model.MentorComment{
					{MentorName: "Dana", Comment: "great work,\nreally"},
					{MentorName: "Arman", Comment: "solid"},
				},
			},
		}

		Convey("When rendered as CSV", func() {
			out := export.Comments(data)

			Convey("Then each comment becomes its own row", func() {
				records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[1], ShouldResemble, []string{"1", "Alpha", "CAND-0001", "Dana", "great work,\nreally"})
				So(records[2][3], ShouldEqual, "Arman")
			})
		})
	})
}

func TestFilename(t *testing.T) {
	Convey("Given a fixed date", t, func() {
		ts := time.Date(2024, 5, 1, 13, 45, 0, 0, time.UTC)

		Convey("Then the name is the prefix plus an ISO date stamp", func() {
			So(export.Filename(export.RankingsPrefix, ts), ShouldEqual, "team_rankings_2024-05-01.csv")
			So(export.Filename(export.CommentsPrefix, ts), ShouldEqual, "team_comments_2024-05-01.csv")
		})
	})
}
