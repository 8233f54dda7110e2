package comparison_test

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	comparison "github.com/mirzakhani/gamerank/internal/domain/comparison"
	. "github.com/smartystreets/goconvey/convey"
)

// rankedList builds ids "g1".."gN", most preferred first.
func rankedList(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("g%d", i+1)
	}
	return ids
}

// drive answers every comparison as if the new item belongs at target
// (1-based): the new item wins against any opponent at or below target.
func drive(s *comparison.Session, ranked []string, target int) {
	index := make(map[string]int, len(ranked))
	for i, id := range ranked {
		index[id] = i + 1
	}
	for s.State() == comparison.StateAwaitingChoice {
		opponent, err := s.Opponent()
		So(err, ShouldBeNil)
		if index[opponent] >= target {
			So(s.Apply(comparison.ChoiceNew), ShouldBeNil)
		} else {
			So(s.Apply(comparison.ChoiceOpponent), ShouldBeNil)
		}
	}
}

func TestEmptyListResolvesImmediately(t *testing.T) {
	Convey("Given a session over an empty ranked list", t, func() {
		s := comparison.New("new-game", nil)

		Convey("Then it resolves at position 1 with zero comparisons", func() {
			So(s.State(), ShouldEqual, comparison.StateResolved)
			So(s.Comparisons(), ShouldEqual, 0)

			pos, err := s.Position()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 1)
		})

		Convey("And asking for an opponent fails", func() {
			_, err := s.Opponent()
			So(err, ShouldWrap, comparison.ErrNotAwaitingChoice)
		})
	})
}

func TestBinaryInsertion(t *testing.T) {
	Convey("Given a ranked list of seven items", t, func() {
		ranked := rankedList(7)

		Convey("When the new item beats everything", func() {
			s := comparison.New("new-game", ranked)
			drive(s, ranked, 1)

			pos, err := s.Position()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 1)
			So(s.Comparisons(), ShouldEqual, 3)
		})

		Convey("When the new item loses to everything", func() {
			s := comparison.New("new-game", ranked)
			drive(s, ranked, 8)

			pos, err := s.Position()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 8)
			So(s.Comparisons(), ShouldEqual, 3)
		})

		Convey("When the new item belongs in the middle", func() {
			for target := 1; target <= 8; target++ {
				s := comparison.New("new-game", ranked)
				drive(s, ranked, target)

				pos, err := s.Position()
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, target)
			}
		})
	})

	Convey("Given lists of assorted sizes, every target position is reachable", t, func() {
		for _, n := range []int{1, 2, 3, 10, 100, 1000} {
			ranked := rankedList(n)
			for _, target := range []int{1, (n + 1) / 2, n + 1} {
				s := comparison.New("new-game", ranked)
				drive(s, ranked, target)
				// All sizes here fit within the ten-comparison budget.
				pos, err := s.Position()
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, target)
			}
		}
	})
}

func TestComparisonBudget(t *testing.T) {
	Convey("Given very large ranked lists", t, func() {
		for _, n := range []int{1 << 11, 1 << 14, 100000} {
			ranked := rankedList(n)

			Convey(fmt.Sprintf("When placing against %d items", n), func() {
				s := comparison.New("new-game", ranked)
				rng := rand.New(rand.NewSource(int64(n)))
				for s.State() == comparison.StateAwaitingChoice {
					if rng.Intn(2) == 0 {
						So(s.Apply(comparison.ChoiceNew), ShouldBeNil)
					} else {
						So(s.Apply(comparison.ChoiceOpponent), ShouldBeNil)
					}
				}

				Convey("Then it never asks more than the budget", func() {
					So(s.Comparisons(), ShouldBeLessThanOrEqualTo, comparison.DefaultMaxComparisons)
					So(s.State(), ShouldEqual, comparison.StateResolved)
				})
			})
		}
	})

	Convey("Given a list the budget can fully search", t, func() {
		n := 500
		ranked := rankedList(n)
		worst := int(math.Ceil(math.Log2(float64(n + 1))))

		s := comparison.New("new-game", ranked)
		drive(s, ranked, n/3)

		Convey("Then the step count stays within ceil(log2(N+1))", func() {
			So(s.Comparisons(), ShouldBeLessThanOrEqualTo, worst)
		})
	})
}

func TestUndo(t *testing.T) {
	Convey("Given a session with a few choices applied", t, func() {
		ranked := rankedList(15)
		s := comparison.New("new-game", ranked)

		firstOpponent, err := s.Opponent()
		So(err, ShouldBeNil)

		So(s.Apply(comparison.ChoiceNew), ShouldBeNil)
		So(s.Apply(comparison.ChoiceOpponent), ShouldBeNil)
		So(s.Apply(comparison.ChoiceNew), ShouldBeNil)

		Convey("When every choice is undone", func() {
			So(s.Undo(), ShouldBeNil)
			So(s.Undo(), ShouldBeNil)
			So(s.Undo(), ShouldBeNil)

			Convey("Then the session is back at its initial state", func() {
				So(s.Comparisons(), ShouldEqual, 0)
				So(s.CanUndo(), ShouldBeFalse)

				opponent, err := s.Opponent()
				So(err, ShouldBeNil)
				So(opponent, ShouldEqual, firstOpponent)
			})

			Convey("And one more undo is rejected", func() {
				So(s.Undo(), ShouldWrap, comparison.ErrNoHistory)
			})
		})

		Convey("When a choice is undone and re-applied", func() {
			opponent, err := s.Opponent()
			So(err, ShouldBeNil)

			So(s.Undo(), ShouldBeNil)

			Convey("Then the same comparison is asked again", func() {
				again, err := s.Opponent()
				So(err, ShouldBeNil)
				// The undone comparison's opponent differs; re-applying the
				// prior choice leads back to the same spot.
				So(s.Apply(comparison.ChoiceNew), ShouldBeNil)
				current, err := s.Opponent()
				So(err, ShouldBeNil)
				So(current, ShouldEqual, opponent)
				So(again, ShouldNotEqual, "")
			})
		})
	})

	Convey("Given a session that just resolved", t, func() {
		ranked := rankedList(3)
		s := comparison.New("new-game", ranked)
		drive(s, ranked, 2)
		So(s.State(), ShouldEqual, comparison.StateResolved)

		Convey("When the last choice is undone", func() {
			So(s.Undo(), ShouldBeNil)

			Convey("Then the session reopens for the same comparison", func() {
				So(s.State(), ShouldEqual, comparison.StateAwaitingChoice)
				_, err := s.Position()
				So(err, ShouldWrap, comparison.ErrNotResolved)
			})
		})
	})
}

func TestCancel(t *testing.T) {
	Convey("Given a session awaiting a choice", t, func() {
		s := comparison.New("new-game", rankedList(5))
		So(s.Apply(comparison.ChoiceNew), ShouldBeNil)

		Convey("When it is cancelled", func() {
			s.Cancel()

			Convey("Then it accepts no further input", func() {
				So(s.State(), ShouldEqual, comparison.StateCancelled)
				So(s.Apply(comparison.ChoiceNew), ShouldWrap, comparison.ErrNotAwaitingChoice)
				So(s.Undo(), ShouldWrap, comparison.ErrNotAwaitingChoice)
			})
		})
	})
}

func TestBudgetExhaustionPlacesAtLowBoundary(t *testing.T) {
	Convey("Given a tiny comparison budget", t, func() {
		ranked := rankedList(100)
		s := comparison.New("new-game", ranked, comparison.WithMaxComparisons(3))

		Convey("When the budget runs out before convergence", func() {
			So(s.Apply(comparison.ChoiceOpponent), ShouldBeNil) // low=50
			So(s.Apply(comparison.ChoiceNew), ShouldBeNil)      // high=73
			So(s.Apply(comparison.ChoiceOpponent), ShouldBeNil) // low=62, count=3

			Convey("Then it resolves at the current low boundary", func() {
				So(s.State(), ShouldEqual, comparison.StateResolved)
				pos, err := s.Position()
				So(err, ShouldBeNil)
				So(pos, ShouldEqual, 63) // low 62, 1-based
			})
		})
	})
}

func TestOpponentSelection(t *testing.T) {
	Convey("Given a fresh session over ten items", t, func() {
		ranked := rankedList(10)
		s := comparison.New("new-game", ranked)

		Convey("Then the first opponent is the floor midpoint", func() {
			opponent, err := s.Opponent()
			So(err, ShouldBeNil)
			So(opponent, ShouldEqual, "g5") // mid = (0+9)/2 = 4
		})

		Convey("And opponents never repeat within one converging run", func() {
			var seen []string
			for s.State() == comparison.StateAwaitingChoice {
				opponent, err := s.Opponent()
				So(err, ShouldBeNil)
				seen = append(seen, opponent)
				So(s.Apply(comparison.ChoiceNew), ShouldBeNil)
			}
			sorted := append([]string(nil), seen...)
			sort.Strings(sorted)
			for i := 1; i < len(sorted); i++ {
				So(sorted[i], ShouldNotEqual, sorted[i-1])
			}
		})
	})
}
