package seeding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// client wraps http.Client with identity headers and JSON plumbing.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// adminUser is the identity the seeder performs privileged calls as.
var adminUser = seedMentor{
	ID:    "seed-admin",
	Email: "admin@example.org",
	Name:  "Seed Admin",
}

func (c *client) do(ctx context.Context, method, path string, as seedMentor, admin bool, body any, out any) (int, error) {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", as.ID)
	req.Header.Set("X-User-Email", as.Email)
	if admin {
		req.Header.Set("X-User-Role", "admin")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if out != nil && len(data) > 0 && resp.StatusCode < 300 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *client) createTeam(ctx context.Context, t seedTeam) error {
	status, err := c.do(ctx, http.MethodPost, "/teams", adminUser, true, t, nil)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("create team %s: unexpected status %d", t.Name, status)
	}
	return nil
}

// mentorReview is the slice of GET /reviews the seeder needs: the review id
// plus the criterion ids the blank score set was initialized with.
type mentorReview struct {
	Review struct {
		ID     int64 `json:"id"`
		Scores []struct {
			CriterionID string `json:"criterionId"`
		} `json:"scores"`
	} `json:"review"`
}

// listReviews doubles as sign-in: listing lazily creates the mentor row
// server-side.
func (c *client) listReviews(ctx context.Context, m seedMentor) ([]mentorReview, error) {
	var reviews []mentorReview
	status, err := c.do(ctx, http.MethodGet, "/reviews", m, false, nil, &reviews)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list reviews for %s: unexpected status %d", m.Email, status)
	}
	return reviews, nil
}

// assignment mirrors the review row returned by POST /assignments.
type assignment struct {
	ID       int64  `json:"id"`
	TeamID   string `json:"teamId"`
	MentorID string `json:"mentorId"`
}

// createAssignment returns the new review's id; ok is false on a duplicate.
func (c *client) createAssignment(ctx context.Context, teamID, mentorID string) (int64, bool, error) {
	body := map[string]string{"teamId": teamID, "mentorId": mentorID}
	var rv assignment
	status, err := c.do(ctx, http.MethodPost, "/assignments", adminUser, true, body, &rv)
	if err != nil {
		return 0, false, err
	}
	switch status {
	case http.StatusCreated:
		return rv.ID, true, nil
	case http.StatusConflict:
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("assign %s to %s: unexpected status %d", mentorID, teamID, status)
	}
}

func (c *client) saveReview(ctx context.Context, m seedMentor, reviewID int64, scores []map[string]any, comment string) error {
	body := map[string]any{
		"scores":      scores,
		"isCompleted": true,
		"comment":     comment,
	}
	status, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/reviews/%d", reviewID), m, false, body, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("save review %d: unexpected status %d", reviewID, status)
	}
	return nil
}

// leaderboardEntry is the slice of the leaderboard payload verification cares
// about.
type leaderboardEntry struct {
	Rank             int     `json:"rank"`
	AverageScore     float64 `json:"averageScore"`
	CompletedReviews int     `json:"completedReviews"`
}

func (c *client) fetchLeaderboard(ctx context.Context) ([]leaderboardEntry, error) {
	var entries []leaderboardEntry
	status, err := c.do(ctx, http.MethodGet, "/leaderboard", adminUser, true, nil, &entries)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("fetch leaderboard: unexpected status %d", status)
	}
	return entries, nil
}
