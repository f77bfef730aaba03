package seeding

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Score distribution cases.
const (
	caseStrong  = 0
	caseAverage = 1
	caseWeak    = 2
	scoreCases  = 3
)

var teamAdjectives = []string{
	"Quantum", "Solar", "Crimson", "Atlas", "Nimbus", "Vertex",
	"Aurora", "Cobalt", "Ember", "Zephyr", "Orion", "Lumen",
}

var teamNouns = []string{
	"Robotics", "Dynamics", "Labs", "Collective", "Systems", "Works",
	"Forge", "Studio", "Engine", "Foundry", "Circuit", "Grid",
}

var mentorNames = []string{
	"Dana Whitfield", "Arman Petros", "Yuki Tanaka", "Leila Haddad",
	"Marcus Oyelaran", "Ingrid Svensson", "Tomas Herrera", "Priya Nair",
}

var comments = []string{
	"Strong proposal with a clear execution plan.",
	"Good idea, but the budget section needs more detail.",
	"Impressive technical depth; presentation could be tighter.",
	"The team shows promise, though the timeline looks optimistic.",
	"Well-researched problem statement, solution is still vague.",
}

func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// seedTeam is the wire shape for POST /teams.
type seedTeam struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CandidateID     string `json:"candidate_id"`
	ProposalDetails string `json:"proposalDetails"`
}

func generateTeams(n int) []seedTeam {
	teams := make([]seedTeam, n)
	for i := range teams {
		name := fmt.Sprintf("%s %s",
			teamAdjectives[randInt(len(teamAdjectives))],
			teamNouns[randInt(len(teamNouns))])
		teams[i] = seedTeam{
			ID:              uuid.NewString(),
			Name:            fmt.Sprintf("%s #%d", name, i+1),
			CandidateID:     fmt.Sprintf("CAND-%04d", i+1),
			ProposalDetails: fmt.Sprintf("Seeded proposal for %s.", name),
		}
	}
	return teams
}

// seedMentor carries the identity headers a mentor authenticates with.
type seedMentor struct {
	ID    string
	Email string
	Name  string
}

func generateMentors(n int) []seedMentor {
	mentors := make([]seedMentor, n)
	for i := range mentors {
		name := mentorNames[i%len(mentorNames)]
		mentors[i] = seedMentor{
			ID:    uuid.NewString(),
			Email: fmt.Sprintf("mentor%d@example.org", i+1),
			Name:  name,
		}
	}
	return mentors
}

// generateScores produces one score per criterion id, biased toward a
// performance band so leaderboards show spread.
func generateScores(criterionIDs []string) []map[string]any {
	band := randInt(scoreCases)
	scores := make([]map[string]any, len(criterionIDs))
	for i, id := range criterionIDs {
		var v int
		switch band {
		case caseStrong:
			v = 4 + randInt(2) // 4-5
		case caseWeak:
			v = 1 + randInt(2) // 1-2
		default:
			v = 2 + randInt(3) // 2-4
		}
		scores[i] = map[string]any{"criterionId": id, "score": v}
	}
	return scores
}

func randomComment() string {
	return comments[randInt(len(comments))]
}
