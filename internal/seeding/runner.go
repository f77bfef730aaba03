package seeding

import (
	"context"
	"fmt"

	"github.com/okian/mentorboard/pkg/logger"
)

// Run executes the full seeding sequence: teams, mentor sign-ins,
// assignments, a portion of completed reviews, then a leaderboard check.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Named("seed")
	client := newClient(cfg.BaseURL, cfg.Timeout)
	stats := &Stats{}

	teams := generateTeams(cfg.Teams)
	mentors := generateMentors(cfg.Mentors)

	log.Info(ctx, "seeding teams", logger.Int("count", len(teams)))
	for _, t := range teams {
		if err := client.createTeam(ctx, t); err != nil {
			stats.Failures++
			log.Warn(ctx, "team creation failed", logger.String("team", t.Name), logger.Error(err))
			continue
		}
		stats.TeamsCreated++
	}

	log.Info(ctx, "registering mentors", logger.Int("count", len(mentors)))
	for _, m := range mentors {
		if _, err := client.listReviews(ctx, m); err != nil {
			stats.Failures++
			log.Warn(ctx, "mentor registration failed", logger.String("email", m.Email), logger.Error(err))
			continue
		}
		stats.MentorsSeeded++
	}

	assignPerTeam := cfg.AssignPerTeam
	if assignPerTeam > len(mentors) {
		assignPerTeam = len(mentors)
	}
	log.Info(ctx, "creating assignments", logger.Int("perTeam", assignPerTeam))
	for ti, t := range teams {
		for j := 0; j < assignPerTeam; j++ {
			m := mentors[(ti+j)%len(mentors)]
			_, created, err := client.createAssignment(ctx, t.ID, m.ID)
			switch {
			case err != nil:
				stats.Failures++
				log.Warn(ctx, "assignment failed", logger.String("team", t.Name), logger.Error(err))
			case !created:
				stats.Duplicates++
			default:
				stats.Assignments++
			}
		}
	}

	log.Info(ctx, "completing reviews", logger.Float64("ratio", cfg.CompletedRatio))
	for _, m := range mentors {
		reviews, err := client.listReviews(ctx, m)
		if err != nil {
			stats.Failures++
			log.Warn(ctx, "review listing failed", logger.String("email", m.Email), logger.Error(err))
			continue
		}
		for _, rv := range reviews {
			if randInt(100) >= int(cfg.CompletedRatio*100) {
				continue
			}
			ids := make([]string, len(rv.Review.Scores))
			for i, sc := range rv.Review.Scores {
				ids[i] = sc.CriterionID
			}
			if err := client.saveReview(ctx, m, rv.Review.ID, generateScores(ids), randomComment()); err != nil {
				stats.Failures++
				if cfg.Verbose {
					log.Warn(ctx, "review save failed", logger.Int64("reviewId", rv.Review.ID), logger.Error(err))
				}
				continue
			}
			stats.ReviewsCompleted++
		}
	}

	if err := verify(ctx, client, stats); err != nil {
		return err
	}

	log.Info(ctx, "seeding finished",
		logger.Int("teams", stats.TeamsCreated),
		logger.Int("mentors", stats.MentorsSeeded),
		logger.Int("assignments", stats.Assignments),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("completed", stats.ReviewsCompleted),
		logger.Int("failures", stats.Failures),
	)
	return nil
}

// verify fetches the leaderboard and sanity-checks it against what was
// written: ranks must be contiguous from 1 and completed counts must add up.
func verify(ctx context.Context, c *client, stats *Stats) error {
	entries, err := c.fetchLeaderboard(ctx)
	if err != nil {
		return err
	}

	completed := 0
	for i, e := range entries {
		if e.Rank != i+1 {
			return fmt.Errorf("leaderboard rank gap at position %d: got rank %d", i, e.Rank)
		}
		completed += e.CompletedReviews
	}
	if completed != stats.ReviewsCompleted {
		return fmt.Errorf("leaderboard shows %d completed reviews, seeded %d", completed, stats.ReviewsCompleted)
	}

	logger.Named("seed").Info(ctx, "leaderboard verified",
		logger.Int("entries", len(entries)),
		logger.Int("completedReviews", completed),
	)
	return nil
}
