package identity_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/mentorboard/internal/adapters/store"
	"github.com/okian/mentorboard/internal/identity"
)

func TestDisplayName(t *testing.T) {
	Convey("Given users with varying identity data", t, func() {
		Convey("When the user has an email", func() {
			u := identity.User{ID: "u1", Email: "dana.whitfield@example.org"}
			So(u.DisplayName(), ShouldEqual, "dana.whitfield")
		})

		Convey("When the email has no local part", func() {
			u := identity.User{ID: "u1", Email: "@example.org"}
			So(u.DisplayName(), ShouldEqual, "@example.org")
		})

		Convey("When the user has no email at all", func() {
			u := identity.User{ID: "u1"}
			So(u.DisplayName(), ShouldEqual, "u1")
		})
	})
}

func TestEnsureMentor(t *testing.T) {
	Convey("Given an empty store", t, func() {
		st := store.NewMemStore()
		ctx := context.Background()
		user := identity.User{ID: "u1", Email: "dana@example.org"}

		Convey("When a new user is ensured", func() {
			m, err := identity.EnsureMentor(ctx, st, user)

			Convey("Then a mentor row is created with the derived name", func() {
				So(err, ShouldBeNil)
				So(m.ID, ShouldEqual, "u1")
				So(m.Name, ShouldEqual, "dana")
				So(m.IsInternal, ShouldBeFalse)
			})

			Convey("And ensuring again returns the same row without duplicating", func() {
				again, err := identity.EnsureMentor(ctx, st, user)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, m)
				mentors, lerr := st.ListMentors(ctx)
				So(lerr, ShouldBeNil)
				So(mentors, ShouldHaveLength, 1)
			})
		})

		Convey("When an admin is ensured", func() {
			admin := identity.User{ID: "a1", Email: "ops@example.org", Role: identity.RoleAdmin}
			m, err := identity.EnsureMentor(ctx, st, admin)

			Convey("Then the internal flag is set", func() {
				So(err, ShouldBeNil)
				So(m.IsInternal, ShouldBeTrue)
			})
		})
	})
}

func TestStaticProvider(t *testing.T) {
	Convey("Given a signed-out static provider", t, func() {
		p := identity.NewStaticProvider()
		ctx := context.Background()

		Convey("Then there is no current user", func() {
			_, ok := p.CurrentUser(ctx)
			So(ok, ShouldBeFalse)
		})

		Convey("When a user signs in", func() {
			var events []bool
			unsub := p.OnAuthChange(func(u identity.User, signedIn bool) {
				events = append(events, signedIn)
			})
			defer unsub()

			signed := p.SignIn(identity.User{Email: "dana@example.org"})

			Convey("Then a subject id is minted for a blank one", func() {
				So(signed.ID, ShouldNotBeEmpty)
			})

			Convey("Then subscribers see the transition and the user is current", func() {
				So(events, ShouldResemble, []bool{true})
				u, ok := p.CurrentUser(ctx)
				So(ok, ShouldBeTrue)
				So(u.Email, ShouldEqual, "dana@example.org")
			})

			Convey("And when the user signs out", func() {
				So(p.SignOut(ctx), ShouldBeNil)

				Convey("Then the session is gone and the transition observed", func() {
					_, ok := p.CurrentUser(ctx)
					So(ok, ShouldBeFalse)
					So(events, ShouldResemble, []bool{true, false})
				})
			})

			Convey("And when the subscriber unsubscribes", func() {
				unsub()
				p.SignIn(identity.User{Email: "other@example.org"})

				Convey("Then no further events arrive", func() {
					So(events, ShouldResemble, []bool{true})
				})
			})
		})
	})
}
