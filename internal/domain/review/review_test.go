package review_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/internal/domain/review"
	"github.com/okian/mentorboard/internal/domain/rubric"
)

func intp(v int) *int { return &v }

func fullScores(rb *rubric.Rubric, v int) []model.CriterionScore {
	out := rb.BlankScores()
	for i := range out {
		out[i].Score = intp(v)
	}
	return out
}

// draftSpy records Clear calls.
type draftSpy struct {
	cleared []int64
}

func (d *draftSpy) Clear(reviewID int64, mentorID string) {
	d.cleared = append(d.cleared, reviewID)
}

// failingStore wraps a working store but refuses review updates.
type failingStore struct {
	store.Store
}

var errStoreDown = errors.New("store down")

func (f *failingStore) UpdateReview(ctx context.Context, id int64, mentorID string, patch store.ReviewPatch) (model.Review, error) {
	return model.Review{}, errStoreDown
}

func seedReview(st store.Store, rb *rubric.Rubric, teamID, mentorID string) model.Review {
	r, err := st.InsertReview(context.Background(), model.Review{
		TeamID:   teamID,
		MentorID: mentorID,
		Scores:   rb.BlankScores(),
	})
	So(err, ShouldBeNil)
	return r
}

func TestStateOf(t *testing.T) {
	Convey("Given the default rubric", t, func() {
		rb := rubric.Default()

		Convey("When scores are partial", func() {
			r := model.Review{Scores: rb.BlankScores()}
			So(review.StateOf(rb, r, false), ShouldEqual, review.StatePending)
		})

		Convey("When all scores are set but the comment is blank", func() {
			r := model.Review{Scores: fullScores(rb, 3), Comment: "   "}
			So(review.StateOf(rb, r, false), ShouldEqual, review.StatePending)
		})

		Convey("When all scores are set and a comment is present", func() {
			r := model.Review{Scores: fullScores(rb, 3), Comment: "done"}
			So(review.StateOf(rb, r, false), ShouldEqual, review.StatePendingReady)
		})

		Convey("When the review is completed", func() {
			r := model.Review{Scores: fullScores(rb, 3), Comment: "done", IsCompleted: true}

			Convey("Then clean local state reads completed", func() {
				So(review.StateOf(rb, r, false), ShouldEqual, review.StateCompleted)
			})

			Convey("Then diverging local edits read completed_dirty", func() {
				So(review.StateOf(rb, r, true), ShouldEqual, review.StateCompletedDirty)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a review service", t, func() {
		rb := rubric.Default()
		svc := review.New(rb, store.NewMemStore())

		Convey("When a score names an unknown criterion", func() {
			err := svc.Validate([]model.CriterionScore{{CriterionID: "ghost", Score: intp(3)}}, false, "")
			So(err, ShouldWrap, review.ErrUnknownCriterion)
		})

		Convey("When a score is out of range", func() {
			err := svc.Validate([]model.CriterionScore{{CriterionID: "c1", Score: intp(7)}}, false, "")
			So(err, ShouldWrap, review.ErrScoreOutOfRange)
		})

		Convey("When completing with a null score", func() {
			scores := fullScores(rb, 4)
			scores[2].Score = nil
			err := svc.Validate(scores, true, "looks good")
			So(err, ShouldWrap, review.ErrIncompleteScores)
		})

		Convey("When completing with a whitespace comment", func() {
			err := svc.Validate(fullScores(rb, 4), true, "  \t ")
			So(err, ShouldWrap, review.ErrEmptyComment)
		})

		Convey("When saving partial progress without completing", func() {
			scores := rb.BlankScores()
			scores[0].Score = intp(2)
			So(svc.Validate(scores, false, ""), ShouldBeNil)
		})

		Convey("When completing a fully scored, commented review", func() {
			So(svc.Validate(fullScores(rb, 4), true, "solid work"), ShouldBeNil)
		})
	})
}

func TestSave(t *testing.T) {
	Convey("Given a review owned by one mentor", t, func() {
		rb := rubric.Default()
		st := store.NewMemStore()
		drafts := &draftSpy{}
		svc := review.New(rb, st, review.WithDrafts(drafts))
		seeded := seedReview(st, rb, "t1", "m1")
		ctx := context.Background()

		Convey("When the owner saves a completed review", func() {
			updated, err := svc.Save(ctx, "m1", seeded.ID, fullScores(rb, 4), true, "well argued")

			Convey("Then the confirmed row is returned and the draft cleared", func() {
				So(err, ShouldBeNil)
				So(updated.IsCompleted, ShouldBeTrue)
				So(updated.Comment, ShouldEqual, "well argued")
				So(drafts.cleared, ShouldResemble, []int64{seeded.ID})
			})

			Convey("Then the store holds the saved values", func() {
				rows, err := st.ListReviews(ctx, store.ReviewFilter{MentorID: "m1"})
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0].IsCompleted, ShouldBeTrue)
			})
		})

		Convey("When another mentor attempts the save", func() {
			_, err := svc.Save(ctx, "intruder", seeded.ID, fullScores(rb, 4), true, "hijack")

			Convey("Then the ownership filter reports not found", func() {
				So(err, ShouldWrap, store.ErrNotFound)
			})

			Convey("Then the stored row is untouched and the draft kept", func() {
				rows, lerr := st.ListReviews(ctx, store.ReviewFilter{MentorID: "m1"})
				So(lerr, ShouldBeNil)
				So(rows[0].IsCompleted, ShouldBeFalse)
				So(drafts.cleared, ShouldBeEmpty)
			})
		})

		Convey("When validation fails", func() {
			scores := fullScores(rb, 4)
			scores[0].Score = nil
			_, err := svc.Save(ctx, "m1", seeded.ID, scores, true, "incomplete")

			Convey("Then the store is never written", func() {
				So(err, ShouldWrap, review.ErrIncompleteScores)
				rows, lerr := st.ListReviews(ctx, store.ReviewFilter{MentorID: "m1"})
				So(lerr, ShouldBeNil)
				So(rows[0].Comment, ShouldBeEmpty)
			})
		})

		Convey("When the store rejects the write", func() {
			broken := review.New(rb, &failingStore{Store: st}, review.WithDrafts(drafts))
			_, err := broken.Save(ctx, "m1", seeded.ID, fullScores(rb, 4), true, "doomed")

			Convey("Then the error surfaces and the draft survives", func() {
				So(err, ShouldWrap, errStoreDown)
				So(drafts.cleared, ShouldBeEmpty)
			})
		})
	})
}
