package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/mentorboard/internal/seeding"
	"github.com/okian/mentorboard/pkg/logger"
)

const runTimeout = 5 * time.Minute

func main() {
	var (
		baseURL        = flag.String("url", "http://localhost:9090", "Base URL of the service")
		teams          = flag.Int("teams", seeding.DefaultTeams, "Number of teams to create")
		mentors        = flag.Int("mentors", seeding.DefaultMentors, "Number of mentor identities to seed")
		assignPerTeam  = flag.Int("assign", seeding.DefaultAssignPerTeam, "Mentors assigned per team")
		completedRatio = flag.Float64("completed", seeding.DefaultCompletedRatio, "Fraction of assignments completed with scores")
		timeout        = flag.Duration("timeout", seeding.DefaultTimeout, "HTTP request timeout")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := &seeding.Config{
		BaseURL:        *baseURL,
		Teams:          *teams,
		Mentors:        *mentors,
		AssignPerTeam:  *assignPerTeam,
		CompletedRatio: *completedRatio,
		Timeout:        *timeout,
		Verbose:        *verbose,
	}

	if err := seeding.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
