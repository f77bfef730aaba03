package store_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/model"
)

func intp(v int) *int { return &v }

func TestMemStoreTeams(t *testing.T) {
	Convey("Given an empty store", t, func() {
		st := store.NewMemStore()
		ctx := context.Background()

		Convey("When teams are inserted", func() {
			_, err := st.InsertTeam(ctx, model.Team{ID: "t1", Name: "Alpha"})
			So(err, ShouldBeNil)
			_, err = st.InsertTeam(ctx, model.Team{ID: "t2", Name: "Beta"})
			So(err, ShouldBeNil)

			Convey("Then listing preserves insertion order", func() {
				teams, err := st.ListTeams(ctx)
				So(err, ShouldBeNil)
				So(teams, ShouldHaveLength, 2)
				So(teams[0].ID, ShouldEqual, "t1")
			})

			Convey("Then listing by ids filters", func() {
				teams, err := st.ListTeams(ctx, "t2")
				So(err, ShouldBeNil)
				So(teams, ShouldHaveLength, 1)
				So(teams[0].Name, ShouldEqual, "Beta")
			})

			Convey("Then a duplicate id is a conflict", func() {
				_, err := st.InsertTeam(ctx, model.Team{ID: "t1", Name: "Clone"})
				So(err, ShouldWrap, store.ErrConflict)
			})

			Convey("Then a missing team reads not found", func() {
				_, err := st.GetTeam(ctx, "nope")
				So(err, ShouldWrap, store.ErrNotFound)
			})
		})
	})
}

func TestMemStoreReviews(t *testing.T) {
	Convey("Given a store with one review", t, func() {
		st := store.NewMemStore()
		ctx := context.Background()
		inserted, err := st.InsertReview(ctx, model.Review{
			TeamID:   "t1",
			MentorID: "m1",
			Scores:   []model.CriterionScore{{CriterionID: "c1"}},
		})
		So(err, ShouldBeNil)

		Convey("Then ids are assigned serially from 1", func() {
			So(inserted.ID, ShouldEqual, 1)
			second, err := st.InsertReview(ctx, model.Review{TeamID: "t2", MentorID: "m1"})
			So(err, ShouldBeNil)
			So(second.ID, ShouldEqual, 2)
		})

		Convey("When the owner updates it", func() {
			patch := store.ReviewPatch{
				Scores:      []model.CriterionScore{{CriterionID: "c1", Score: intp(5)}},
				IsCompleted: true,
				Comment:     "done",
			}
			updated, err := st.UpdateReview(ctx, inserted.ID, "m1", patch)

			Convey("Then the patch lands", func() {
				So(err, ShouldBeNil)
				So(updated.IsCompleted, ShouldBeTrue)
				So(*updated.Scores[0].Score, ShouldEqual, 5)
			})
		})

		Convey("When a non-owner updates it", func() {
			_, err := st.UpdateReview(ctx, inserted.ID, "someone-else", store.ReviewPatch{})

			Convey("Then zero rows match and the update fails", func() {
				So(err, ShouldWrap, store.ErrNotFound)
				rows, lerr := st.ListReviews(ctx, store.ReviewFilter{MentorID: "m1"})
				So(lerr, ShouldBeNil)
				So(rows[0].IsCompleted, ShouldBeFalse)
			})
		})

		Convey("When listings are filtered", func() {
			_, err := st.InsertReview(ctx, model.Review{TeamID: "t2", MentorID: "m2"})
			So(err, ShouldBeNil)

			byMentor, err := st.ListReviews(ctx, store.ReviewFilter{MentorID: "m2"})
			So(err, ShouldBeNil)
			So(byMentor, ShouldHaveLength, 1)

			byPair, err := st.ListReviews(ctx, store.ReviewFilter{TeamID: "t1", MentorID: "m1"})
			So(err, ShouldBeNil)
			So(byPair, ShouldHaveLength, 1)
		})

		Convey("When a listed review is mutated by the caller", func() {
			rows, err := st.ListReviews(ctx, store.ReviewFilter{})
			So(err, ShouldBeNil)
			rows[0].Comment = "tampered"
			rows[0].Scores[0].Score = intp(1)

			Convey("Then the stored copy is unaffected", func() {
				fresh, err := st.ListReviews(ctx, store.ReviewFilter{})
				So(err, ShouldBeNil)
				So(fresh[0].Comment, ShouldBeEmpty)
				So(fresh[0].Scores[0].Score, ShouldBeNil)
			})
		})

		Convey("When the review is deleted", func() {
			removed, err := st.DeleteReview(ctx, inserted.ID)

			Convey("Then the removed row comes back and the store is empty", func() {
				So(err, ShouldBeNil)
				So(removed.ID, ShouldEqual, inserted.ID)
				rows, lerr := st.ListReviews(ctx, store.ReviewFilter{})
				So(lerr, ShouldBeNil)
				So(rows, ShouldBeEmpty)
			})

			Convey("Then deleting again reads not found", func() {
				_, err := st.DeleteReview(ctx, inserted.ID)
				So(err, ShouldWrap, store.ErrNotFound)
			})
		})
	})
}

func TestMemStoreMentors(t *testing.T) {
	Convey("Given an empty store", t, func() {
		st := store.NewMemStore()
		ctx := context.Background()

		Convey("When a mentor is inserted twice", func() {
			_, err := st.InsertMentor(ctx, model.Mentor{ID: "m1", Name: "Dana"})
			So(err, ShouldBeNil)
			_, err = st.InsertMentor(ctx, model.Mentor{ID: "m1", Name: "Dana Again"})

			Convey("Then the second insert conflicts", func() {
				So(err, ShouldWrap, store.ErrConflict)
			})

			Convey("And lookup returns the original", func() {
				m, gerr := st.GetMentor(ctx, "m1")
				So(gerr, ShouldBeNil)
				So(m.Name, ShouldEqual, "Dana")
			})
		})
	})
}
