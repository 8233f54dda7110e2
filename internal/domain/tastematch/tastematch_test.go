package tastematch_test

import (
	"testing"

	tastematch "github.com/mirzakhani/gamerank/internal/domain/tastematch"
	. "github.com/smartystreets/goconvey/convey"
)

func list(positions map[string]int) []tastematch.Entry {
	entries := make([]tastematch.Entry, 0, len(positions))
	for id, pos := range positions {
		entries = append(entries, tastematch.Entry{ItemID: id, Position: pos})
	}
	return entries
}

func TestScoreSpearman(t *testing.T) {
	Convey("Given two lists sharing three items", t, func() {
		mine := list(map[string]int{"a": 1, "b": 2, "c": 3})
		theirs := list(map[string]int{"a": 1, "b": 3, "c": 2})

		Convey("Then rho=0.5 maps to a match of 75", func() {
			// d² = 0+1+1 = 2, rho = 1 - 12/24 = 0.5
			So(tastematch.Score(mine, theirs), ShouldAlmostEqual, 75, 1e-9)
		})

		Convey("And the score is symmetric", func() {
			So(tastematch.Score(theirs, mine), ShouldAlmostEqual, tastematch.Score(mine, theirs), 1e-9)
		})
	})

	Convey("Given identical rankings", t, func() {
		mine := list(map[string]int{"a": 1, "b": 2, "c": 3, "d": 4})

		Convey("Then the match is 100", func() {
			So(tastematch.Score(mine, mine), ShouldAlmostEqual, 100, 1e-9)
		})
	})

	Convey("Given perfectly opposite rankings", t, func() {
		mine := list(map[string]int{"a": 1, "b": 2, "c": 3})
		theirs := list(map[string]int{"a": 3, "b": 2, "c": 1})

		Convey("Then the match is 0", func() {
			So(tastematch.Score(mine, theirs), ShouldAlmostEqual, 0, 1e-9)
		})
	})

	Convey("Given shared items scattered through longer lists", t, func() {
		// Only relative order among shared items matters, not absolute
		// positions: {2,9,17} vs {1,40,90} agree perfectly.
		mine := []tastematch.Entry{
			{ItemID: "a", Position: 2},
			{ItemID: "b", Position: 9},
			{ItemID: "c", Position: 17},
			{ItemID: "x", Position: 1},
		}
		theirs := []tastematch.Entry{
			{ItemID: "a", Position: 1},
			{ItemID: "b", Position: 40},
			{ItemID: "c", Position: 90},
			{ItemID: "y", Position: 2},
		}

		Convey("Then relative re-ranking yields a perfect match", func() {
			So(tastematch.Score(mine, theirs), ShouldAlmostEqual, 100, 1e-9)
		})
	})
}

func TestScoreSingleSharedItem(t *testing.T) {
	Convey("Given exactly one shared item", t, func() {
		mine := make([]tastematch.Entry, 10)
		for i := range mine {
			mine[i] = tastematch.Entry{ItemID: string(rune('a' + i)), Position: i + 1}
		}
		mine[1] = tastematch.Entry{ItemID: "shared", Position: 2}

		theirs := make([]tastematch.Entry, 20)
		for i := range theirs {
			theirs[i] = tastematch.Entry{ItemID: string(rune('A' + i)), Position: i + 1}
		}
		theirs[4] = tastematch.Entry{ItemID: "shared", Position: 5}

		Convey("Then the linear distance fallback applies", func() {
			// d=3, max(L1,L2)=20 -> 100*(1-3/20) = 85
			So(tastematch.Score(mine, theirs), ShouldAlmostEqual, 85, 1e-9)
		})
	})

	Convey("Given one shared item at identical positions", t, func() {
		mine := []tastematch.Entry{{ItemID: "shared", Position: 1}}
		theirs := []tastematch.Entry{{ItemID: "shared", Position: 1}}

		Convey("Then the match is perfect", func() {
			So(tastematch.Score(mine, theirs), ShouldAlmostEqual, 100, 1e-9)
		})
	})
}

func TestScoreNoOverlap(t *testing.T) {
	Convey("Given lists with no shared items", t, func() {
		mine := list(map[string]int{"a": 1, "b": 2})
		theirs := list(map[string]int{"c": 1, "d": 2})

		Convey("Then there is no signal and the score is 0", func() {
			So(tastematch.Score(mine, theirs), ShouldEqual, 0)
			So(tastematch.SharedCount(mine, theirs), ShouldEqual, 0)
		})
	})

	Convey("Given two empty lists", t, func() {
		So(tastematch.Score(nil, nil), ShouldEqual, 0)
	})
}

func TestCanonicalMatching(t *testing.T) {
	Convey("Given the same game under different edition ids", t, func() {
		mine := []tastematch.Entry{
			{ItemID: "game-pc", CanonicalID: "game", Position: 1},
			{ItemID: "other-mine", Position: 2},
		}
		theirs := []tastematch.Entry{
			{ItemID: "game-console", CanonicalID: "game", Position: 1},
			{ItemID: "other-theirs", Position: 2},
		}

		Convey("Then canonical ids unify the editions", func() {
			So(tastematch.SharedCount(mine, theirs), ShouldEqual, 1)
		})
	})

	Convey("Given entries without canonical ids", t, func() {
		mine := []tastematch.Entry{{ItemID: "game", Position: 1}}
		theirs := []tastematch.Entry{{ItemID: "game", Position: 3}}

		Convey("Then the raw id is the fallback identity", func() {
			So(tastematch.SharedCount(mine, theirs), ShouldEqual, 1)
		})
	})
}
