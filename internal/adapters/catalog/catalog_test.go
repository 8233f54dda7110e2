package catalog_test

import (
	"context"
	"testing"

	catalog "github.com/mirzakhani/gamerank/internal/adapters/catalog"
	"github.com/mirzakhani/gamerank/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalogLookup(t *testing.T) {
	ctx := context.Background()

	Convey("Given a catalog seeded with two games", t, func() {
		mc := 93.0
		cat := catalog.NewMemCatalog(
			model.ItemMeta{ItemID: "hades", Title: "Hades", Genres: []string{"Roguelike"}, Metacritic: &mc},
			model.ItemMeta{ItemID: "celeste", Title: "Celeste", Genres: []string{"Platformer"}},
		)

		Convey("When looking up a known item", func() {
			meta, err := cat.Lookup(ctx, "hades")
			So(err, ShouldBeNil)
			So(meta.Title, ShouldEqual, "Hades")
			So(*meta.Metacritic, ShouldEqual, 93.0)
		})

		Convey("When looking up an unknown item", func() {
			_, err := cat.Lookup(ctx, "ghost")
			So(err, ShouldWrap, catalog.ErrNotFound)
		})

		Convey("When resolving a batch with unknown ids", func() {
			metas := cat.LookupAll(ctx, []string{"celeste", "ghost", "hades"})
			So(metas, ShouldHaveLength, 2)
			So(metas[0].ItemID, ShouldEqual, "celeste")
			So(metas[1].ItemID, ShouldEqual, "hades")
		})

		Convey("When replacing an entry", func() {
			cat.Put(model.ItemMeta{ItemID: "celeste", Title: "Celeste (2018)"})
			meta, err := cat.Lookup(ctx, "celeste")
			So(err, ShouldBeNil)
			So(meta.Title, ShouldEqual, "Celeste (2018)")
			So(cat.Size(ctx), ShouldEqual, 2)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := cat.Lookup(cctx, "hades")
			So(err, ShouldEqual, context.Canceled)
		})
	})
}
