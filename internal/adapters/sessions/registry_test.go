package sessions_test

import (
	"context"
	"sync"
	"testing"

	sessions "github.com/mirzakhani/gamerank/internal/adapters/sessions"
	"github.com/mirzakhani/gamerank/internal/domain/comparison"
	. "github.com/smartystreets/goconvey/convey"
)

func newSession() *comparison.Session {
	return comparison.New("new-game", []string{"a", "b", "c"})
}

func TestRegistryLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty registry", t, func() {
		reg := sessions.NewInMemoryRegistry()

		Convey("Then updating a missing session fails", func() {
			err := reg.Update(ctx, "alice", func(*comparison.Session) error { return nil })
			So(err, ShouldWrap, sessions.ErrNoSession)
		})

		Convey("When a session begins", func() {
			s := newSession()
			token, err := reg.Begin(ctx, "alice", s)
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			Convey("Then Update runs against the registered session", func() {
				var got *comparison.Session
				err := reg.Update(ctx, "alice", func(sess *comparison.Session) error {
					got = sess
					return nil
				})
				So(err, ShouldBeNil)
				So(got, ShouldEqual, s)
			})

			Convey("Then Update surfaces fn's error unchanged", func() {
				err := reg.Update(ctx, "alice", func(*comparison.Session) error {
					return comparison.ErrNoHistory
				})
				So(err, ShouldEqual, comparison.ErrNoHistory)
			})

			Convey("Then fn may end the session it runs against", func() {
				err := reg.Update(ctx, "alice", func(*comparison.Session) error {
					return reg.End(ctx, "alice")
				})
				So(err, ShouldBeNil)
				So(reg.Size(), ShouldEqual, 0)
			})

			Convey("Then a second session for the same owner is rejected", func() {
				_, err := reg.Begin(ctx, "alice", newSession())
				So(err, ShouldWrap, sessions.ErrSessionActive)
			})

			Convey("When the session ends", func() {
				So(reg.End(ctx, "alice"), ShouldBeNil)
				So(reg.Size(), ShouldEqual, 0)

				Convey("Then the owner can begin again", func() {
					_, err := reg.Begin(ctx, "alice", newSession())
					So(err, ShouldBeNil)
				})
			})
		})

		Convey("When ending a session that does not exist", func() {
			So(reg.End(ctx, "alice"), ShouldWrap, sessions.ErrNoSession)
		})
	})
}

func TestRegistryCapacity(t *testing.T) {
	ctx := context.Background()

	Convey("Given a registry with capacity 2", t, func() {
		reg := sessions.NewInMemoryRegistry(sessions.WithCapacity(2))

		_, err := reg.Begin(ctx, "alice", newSession())
		So(err, ShouldBeNil)
		_, err = reg.Begin(ctx, "bob", newSession())
		So(err, ShouldBeNil)

		Convey("Then a third owner is turned away", func() {
			_, err := reg.Begin(ctx, "carol", newSession())
			So(err, ShouldWrap, sessions.ErrCapacity)
		})

		Convey("When an owner finishes, the slot frees up", func() {
			So(reg.End(ctx, "alice"), ShouldBeNil)
			_, err := reg.Begin(ctx, "carol", newSession())
			So(err, ShouldBeNil)
		})
	})
}

func TestRegistryUpdateSerializesPerOwner(t *testing.T) {
	ctx := context.Background()

	Convey("Given an owner with an active session", t, func() {
		reg := sessions.NewInMemoryRegistry()
		_, err := reg.Begin(ctx, "alice", newSession())
		So(err, ShouldBeNil)

		Convey("When many goroutines update it concurrently", func() {
			const (
				goroutines = 8
				increments = 500
			)

			// Deliberately unsynchronized; only Update's per-owner lock
			// keeps the count exact.
			count := 0
			var wg sync.WaitGroup
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < increments; i++ {
						_ = reg.Update(ctx, "alice", func(*comparison.Session) error {
							count++
							return nil
						})
					}
				}()
			}
			wg.Wait()

			Convey("Then every update ran exactly once", func() {
				So(count, ShouldEqual, goroutines*increments)
			})
		})
	})
}
