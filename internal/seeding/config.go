// Package seeding populates a running instance with demo teams, mentors,
// assignments and reviews through the public HTTP API, then verifies the
// leaderboard reflects the writes.
package seeding

import "time"

// Default seeding parameters.
const (
	DefaultTeams          = 12
	DefaultMentors        = 5
	DefaultAssignPerTeam  = 3
	DefaultCompletedRatio = 0.7
	DefaultTimeout        = 30 * time.Second
)

// Config controls the seeding run.
type Config struct {
	// BaseURL of the running service, e.g. http://localhost:9090.
	BaseURL string

	// Teams is the number of teams to create.
	Teams int

	// Mentors is the number of mentor identities to seed.
	Mentors int

	// AssignPerTeam is how many mentors each team is assigned to.
	AssignPerTeam int

	// CompletedRatio is the fraction of assignments completed with
	// scores and a comment.
	CompletedRatio float64

	// Timeout bounds every HTTP request.
	Timeout time.Duration

	// Verbose enables per-request logging.
	Verbose bool
}

// Stats accumulates the run's outcome.
type Stats struct {
	TeamsCreated     int
	MentorsSeeded    int
	Assignments      int
	Duplicates       int
	ReviewsCompleted int
	Failures         int
}
