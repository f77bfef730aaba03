package rubric_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mentorboard/internal/domain/model"
	"github.com/okian/mentorboard/internal/domain/rubric"
)

func intp(v int) *int { return &v }

func TestNew(t *testing.T) {
	Convey("Given criterion lists of varying quality", t, func() {
		Convey("When the list is empty", func() {
			_, err := rubric.New(nil)

			Convey("Then construction fails", func() {
				So(err, ShouldWrap, rubric.ErrNoCriteria)
			})
		})

		Convey("When a criterion has a blank id", func() {
			_, err := rubric.New([]rubric.Criterion{{ID: "", Name: "x", Weight: 0.5}})

			Convey("Then construction fails", func() {
				So(err, ShouldWrap, rubric.ErrBlankCriterionID)
			})
		})

		Convey("When two criteria share an id", func() {
			_, err := rubric.New([]rubric.Criterion{
				{ID: "a", Name: "first", Weight: 0.5},
				{ID: "a", Name: "second", Weight: 0.5},
			})

			Convey("Then construction fails", func() {
				So(err, ShouldWrap, rubric.ErrDuplicateCriterion)
			})
		})

		Convey("When a weight is non-positive", func() {
			_, err := rubric.New([]rubric.Criterion{{ID: "a", Name: "x", Weight: 0}})

			Convey("Then construction fails", func() {
				So(err, ShouldWrap, rubric.ErrInvalidWeight)
			})
		})

		Convey("When the list is well-formed", func() {
			rb, err := rubric.New([]rubric.Criterion{
				{ID: "a", Name: "first", Weight: 0.4},
				{ID: "b", Name: "second", Weight: 0.6},
			})

			Convey("Then the rubric preserves order and weights", func() {
				So(err, ShouldBeNil)
				So(rb.Len(), ShouldEqual, 2)
				So(rb.Contains("a"), ShouldBeTrue)
				So(rb.Contains("z"), ShouldBeFalse)
				w, ok := rb.Weight("b")
				So(ok, ShouldBeTrue)
				So(w, ShouldEqual, 0.6)
			})
		})
	})
}

func TestDefault(t *testing.T) {
	Convey("Given the default rubric", t, func() {
		rb := rubric.Default()

		Convey("Then it has six criteria with weights summing to 1", func() {
			criteria := rb.Criteria()
			So(criteria, ShouldHaveLength, 6)
			var sum float64
			for _, c := range criteria {
				sum += c.Weight
			}
			So(sum, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then blank scores cover every criterion with nulls", func() {
			blanks := rb.BlankScores()
			So(blanks, ShouldHaveLength, 6)
			for _, cs := range blanks {
				So(cs.Score, ShouldBeNil)
			}
			So(rb.Complete(blanks), ShouldBeFalse)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given a two-criterion rubric", t, func() {
		rb, err := rubric.New([]rubric.Criterion{
			{ID: "a", Name: "first", Weight: 0.4},
			{ID: "b", Name: "second", Weight: 0.6},
		})
		So(err, ShouldBeNil)

		Convey("When the input names an unknown criterion", func() {
			out := rb.Normalize([]model.CriterionScore{
				{CriterionID: "ghost", Score: intp(5)},
				{CriterionID: "a", Score: intp(3)},
			})

			Convey("Then the unknown entry is dropped and missing ids filled null", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].CriterionID, ShouldEqual, "a")
				So(*out[0].Score, ShouldEqual, 3)
				So(out[1].CriterionID, ShouldEqual, "b")
				So(out[1].Score, ShouldBeNil)
			})
		})

		Convey("When the input duplicates a criterion", func() {
			out := rb.Normalize([]model.CriterionScore{
				{CriterionID: "a", Score: intp(2)},
				{CriterionID: "a", Score: intp(5)},
			})

			Convey("Then the first occurrence wins", func() {
				So(*out[0].Score, ShouldEqual, 2)
			})
		})

		Convey("When a score is out of range", func() {
			out := rb.Normalize([]model.CriterionScore{
				{CriterionID: "a", Score: intp(9)},
				{CriterionID: "b", Score: intp(0)},
			})

			Convey("Then both become null", func() {
				So(out[0].Score, ShouldBeNil)
				So(out[1].Score, ShouldBeNil)
			})
		})

		Convey("When the input arrives out of rubric order", func() {
			out := rb.Normalize([]model.CriterionScore{
				{CriterionID: "b", Score: intp(4)},
				{CriterionID: "a", Score: intp(1)},
			})

			Convey("Then rubric order is restored", func() {
				So(out[0].CriterionID, ShouldEqual, "a")
				So(out[1].CriterionID, ShouldEqual, "b")
			})

			Convey("And the repaired set reads as complete", func() {
				So(rb.Complete(out), ShouldBeTrue)
			})
		})
	})
}
