package sample_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
	"github.com/okian/portalrank/internal/sample"
	. "github.com/smartystreets/goconvey/convey"
)

func TestConferenceOf(t *testing.T) {
	Convey("Given the conference table", t, func() {
		So(sample.ConferenceOf("Georgia"), ShouldEqual, "SEC")
		So(sample.ConferenceOf("Oregon"), ShouldEqual, "Big Ten")
		So(sample.ConferenceOf("Notre Dame"), ShouldEqual, "Independent")

		Convey("Then unknown programs fall into Other", func() {
			So(sample.ConferenceOf("Boise State"), ShouldEqual, sample.OtherConference)
		})

		Convey("Then every sample program has a known conference", func() {
			for _, p := range sample.Programs {
				So(sample.ConferenceOf(p.Name), ShouldNotEqual, sample.OtherConference)
			}
		})
	})
}

func TestGeneratorLeague(t *testing.T) {
	Convey("Given the default generator", t, func() {
		league := sample.New().League()

		Convey("Then it has 25 teams with the configured volumes", func() {
			So(len(league), ShouldEqual, 25)
			for i, p := range sample.Programs {
				So(league[i].Name, ShouldEqual, p.Name)
				So(len(league[i].Inflows), ShouldEqual, p.Inflows)
				So(len(league[i].Outflows), ShouldEqual, p.Outflows)
			}
		})

		Convey("Then every player is valid input", func() {
			for _, team := range league {
				for _, p := range append(append([]model.Player{}, team.Inflows...), team.Outflows...) {
					So(valuation.Validate(p), ShouldBeNil)
					So(p.HSRating, ShouldBeBetweenOrEqual, 0.82, 0.99)
					So(p.GamesPlayed, ShouldBeBetweenOrEqual, 0, 40)
					if p.GamesPlayed == 0 {
						So(p.StatsPercentile, ShouldBeNil)
					} else {
						So(*p.StatsPercentile, ShouldBeBetweenOrEqual, 0.3, 0.95)
					}
					So(p.PreviousTeam, ShouldNotEqual, p.NewTeam)
				}
			}
		})

		Convey("Then generation is deterministic", func() {
			So(cmp.Diff(league, sample.New().League()), ShouldBeEmpty)
		})

		Convey("Then a different seed yields a different league", func() {
			So(cmp.Diff(league, sample.New(sample.WithSeed(7)).League()), ShouldNotBeEmpty)
		})
	})
}

func TestGeneratorTransfers(t *testing.T) {
	Convey("Given a small custom league", t, func() {
		g := sample.New(sample.WithPrograms([]sample.Program{
			{Name: "Boise State", Inflows: 3, Outflows: 2},
			{Name: "Army", Inflows: 1},
		}))
		transfers := g.Transfers()

		Convey("Then each player becomes one transfer", func() {
			So(len(transfers), ShouldEqual, 6)
			So(transfers[0].Team, ShouldEqual, "Boise State")
			So(transfers[0].Conference, ShouldEqual, sample.OtherConference)
			So(transfers[3].Direction, ShouldEqual, model.Outflow)
		})

		Convey("Then transfer IDs are unique stable UUIDs", func() {
			seen := map[string]bool{}
			for _, tr := range transfers {
				_, err := uuid.Parse(tr.TransferID)
				So(err, ShouldBeNil)
				So(seen[tr.TransferID], ShouldBeFalse)
				seen[tr.TransferID] = true
			}
			So(g.Transfers()[0].TransferID, ShouldEqual, transfers[0].TransferID)
			So(sample.TransferID(0, "Boise State", model.Inflow, 0), ShouldEqual, transfers[0].TransferID)
		})
	})
}
