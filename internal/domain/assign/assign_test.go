package assign_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/domain/assign"
	"github.com/okian/mentorboard/internal/domain/rubric"
)

func TestAssign(t *testing.T) {
	Convey("Given an assignment manager over an empty store", t, func() {
		rb := rubric.Default()
		st := store.NewMemStore()
		mgr := assign.New(rb, st)
		ctx := context.Background()

		Convey("When a mentor is assigned to a team", func() {
			created, err := mgr.Assign(ctx, "t1", "m1")

			Convey("Then a review appears with one null score per criterion", func() {
				So(err, ShouldBeNil)
				So(created.ID, ShouldBeGreaterThan, 0)
				So(created.TeamID, ShouldEqual, "t1")
				So(created.MentorID, ShouldEqual, "m1")
				So(created.Scores, ShouldHaveLength, rb.Len())
				for _, cs := range created.Scores {
					So(cs.Score, ShouldBeNil)
				}
				So(created.IsCompleted, ShouldBeFalse)
			})

			Convey("And when the same pair is assigned again", func() {
				_, err := mgr.Assign(ctx, "t1", "m1")

				Convey("Then the duplicate is rejected and nothing inserted", func() {
					So(err, ShouldWrap, assign.ErrDuplicateAssignment)
					rows, lerr := st.ListReviews(ctx, store.ReviewFilter{TeamID: "t1", MentorID: "m1"})
					So(lerr, ShouldBeNil)
					So(rows, ShouldHaveLength, 1)
				})
			})

			Convey("And when the same mentor takes a different team", func() {
				_, err := mgr.Assign(ctx, "t2", "m1")

				Convey("Then the assignment succeeds", func() {
					So(err, ShouldBeNil)
				})
			})
		})
	})
}

func TestUnassign(t *testing.T) {
	Convey("Given an existing assignment", t, func() {
		rb := rubric.Default()
		st := store.NewMemStore()
		mgr := assign.New(rb, st)
		ctx := context.Background()
		created, err := mgr.Assign(ctx, "t1", "m1")
		So(err, ShouldBeNil)

		Convey("When it is removed", func() {
			removed, err := mgr.Unassign(ctx, created.ID)

			Convey("Then the deleted row is returned for rollback use", func() {
				So(err, ShouldBeNil)
				So(removed.ID, ShouldEqual, created.ID)
				So(removed.TeamID, ShouldEqual, "t1")
			})

			Convey("Then the store no longer lists it", func() {
				rows, lerr := st.ListReviews(ctx, store.ReviewFilter{})
				So(lerr, ShouldBeNil)
				So(rows, ShouldBeEmpty)
			})
		})

		Convey("When a nonexistent review is removed", func() {
			_, err := mgr.Unassign(ctx, 9999)

			Convey("Then the miss is reported", func() {
				So(err, ShouldWrap, store.ErrNotFound)
			})
		})
	})
}
