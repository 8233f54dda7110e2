package rankorder_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/mirzakhani/gamerank/internal/domain/model"
	rankorder "github.com/mirzakhani/gamerank/internal/domain/rankorder"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInsertAt(t *testing.T) {
	Convey("Given an order with three items", t, func() {
		order := rankorder.New("a", "b", "c")

		Convey("When inserting at the top", func() {
			next, err := order.InsertAt(1, "x")

			Convey("Then everything shifts down by one", func() {
				So(err, ShouldBeNil)
				So(next.Items(), ShouldResemble, []string{"x", "a", "b", "c"})
			})

			Convey("And the original order is untouched", func() {
				So(order.Items(), ShouldResemble, []string{"a", "b", "c"})
			})
		})

		Convey("When inserting in the middle", func() {
			next, err := order.InsertAt(2, "x")
			So(err, ShouldBeNil)
			So(next.Items(), ShouldResemble, []string{"a", "x", "b", "c"})
		})

		Convey("When inserting at N+1", func() {
			next, err := order.InsertAt(4, "x")
			So(err, ShouldBeNil)
			So(next.Items(), ShouldResemble, []string{"a", "b", "c", "x"})
		})

		Convey("When inserting out of range", func() {
			_, err := order.InsertAt(0, "x")
			So(err, ShouldWrap, rankorder.ErrInvalidPosition)

			_, err = order.InsertAt(5, "x")
			So(err, ShouldWrap, rankorder.ErrInvalidPosition)
		})

		Convey("When inserting an item that is already ranked", func() {
			_, err := order.InsertAt(1, "b")
			So(err, ShouldWrap, rankorder.ErrAlreadyRanked)
		})
	})

	Convey("Given an empty order", t, func() {
		order := rankorder.New()

		Convey("When inserting the first item", func() {
			next, err := order.InsertAt(1, "a")
			So(err, ShouldBeNil)
			So(next.Items(), ShouldResemble, []string{"a"})
		})
	})
}

func TestRemoveAt(t *testing.T) {
	Convey("Given an order with four items", t, func() {
		order := rankorder.New("a", "b", "c", "d")

		Convey("When removing from the middle", func() {
			next, err := order.RemoveAt(2)

			Convey("Then items below it shift up", func() {
				So(err, ShouldBeNil)
				So(next.Items(), ShouldResemble, []string{"a", "c", "d"})
			})
		})

		Convey("When removing out of range", func() {
			_, err := order.RemoveAt(0)
			So(err, ShouldWrap, rankorder.ErrInvalidPosition)

			_, err = order.RemoveAt(5)
			So(err, ShouldWrap, rankorder.ErrInvalidPosition)
		})

		Convey("When an insert is followed by a remove at the same position", func() {
			inserted, err := order.InsertAt(3, "x")
			So(err, ShouldBeNil)
			restored, err := inserted.RemoveAt(3)

			Convey("Then the original list is restored exactly", func() {
				So(err, ShouldBeNil)
				So(restored.Items(), ShouldResemble, order.Items())
			})
		})
	})
}

func TestMoveTo(t *testing.T) {
	Convey("Given an order with five items", t, func() {
		order := rankorder.New("a", "b", "c", "d", "e")

		Convey("When moving an item up the list", func() {
			next, err := order.MoveTo(4, 2)

			Convey("Then the covered range shifts down", func() {
				So(err, ShouldBeNil)
				So(next.Items(), ShouldResemble, []string{"a", "d", "b", "c", "e"})
			})
		})

		Convey("When moving an item down the list", func() {
			next, err := order.MoveTo(2, 4)

			Convey("Then the covered range shifts up", func() {
				So(err, ShouldBeNil)
				So(next.Items(), ShouldResemble, []string{"a", "c", "d", "b", "e"})
			})
		})

		Convey("When moving an item onto itself", func() {
			next, err := order.MoveTo(3, 3)

			Convey("Then nothing changes", func() {
				So(err, ShouldBeNil)
				So(next.Items(), ShouldResemble, order.Items())
			})
		})

		Convey("When either position is out of range", func() {
			_, err := order.MoveTo(0, 3)
			So(err, ShouldWrap, rankorder.ErrInvalidPosition)

			_, err = order.MoveTo(2, 6)
			So(err, ShouldWrap, rankorder.ErrInvalidPosition)
		})
	})
}

func TestPositionsStayContiguous(t *testing.T) {
	Convey("Given a random sequence of insert, remove, and move operations", t, func() {
		rng := rand.New(rand.NewSource(7))
		order := rankorder.New()
		nextID := 0

		for step := 0; step < 500; step++ {
			n := order.Len()
			switch op := rng.Intn(3); {
			case op == 0 || n == 0:
				id := fmt.Sprintf("item-%d", nextID)
				nextID++
				next, err := order.InsertAt(1+rng.Intn(n+1), id)
				So(err, ShouldBeNil)
				order = next
			case op == 1:
				next, err := order.RemoveAt(1 + rng.Intn(n))
				So(err, ShouldBeNil)
				order = next
			default:
				next, err := order.MoveTo(1+rng.Intn(n), 1+rng.Intn(n))
				So(err, ShouldBeNil)
				order = next
			}
		}

		Convey("Then positions are exactly 1..N with no gaps or duplicates", func() {
			positions := order.Positions()
			So(len(positions), ShouldEqual, order.Len())
			seen := make(map[int]bool)
			for _, p := range positions {
				So(p, ShouldBeBetweenOrEqual, 1, order.Len())
				So(seen[p], ShouldBeFalse)
				seen[p] = true
			}
		})
	})
}

func TestShifts(t *testing.T) {
	Convey("Given an order", t, func() {
		order := rankorder.New("a", "b", "c")

		Convey("When an item is inserted at the top", func() {
			next, err := order.InsertAt(1, "x")
			So(err, ShouldBeNil)

			Convey("Then shifts cover the new item and every displaced one", func() {
				So(rankorder.Shifts(order, next), ShouldResemble, []model.PositionShift{
					{ItemID: "x", NewPosition: 1},
					{ItemID: "a", NewPosition: 2},
					{ItemID: "b", NewPosition: 3},
					{ItemID: "c", NewPosition: 4},
				})
			})
		})

		Convey("When an item is appended at the bottom", func() {
			next, err := order.InsertAt(4, "x")
			So(err, ShouldBeNil)

			Convey("Then only the new item shifts", func() {
				So(rankorder.Shifts(order, next), ShouldResemble, []model.PositionShift{
					{ItemID: "x", NewPosition: 4},
				})
			})
		})

		Convey("When nothing changes", func() {
			So(rankorder.Shifts(order, order), ShouldBeNil)
		})
	})
}
