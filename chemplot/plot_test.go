package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	tri "github.com/rmera/tricontact"
	"github.com/rmera/tricontact/contactmap"
	"github.com/rmera/tricontact/histo"
)

func testTable() *tri.Table {
	return &tri.Table{Rows: []tri.AggregateRow{
		{Anchor: 400, Prot: 100, Count: 3},
		{Anchor: 400, Prot: 200, Count: 1},
		{Anchor: 401, Prot: 200, Count: 2},
		{Anchor: 402, Prot: 150, Count: 5},
	}}
}

func checkFile(Te *testing.T, name string) {
	Te.Helper()
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if info.Size() == 0 {
		Te.Errorf("%s is empty", name)
	}
}

func TestPlots(Te *testing.T) {
	dir := Te.TempDir()
	T := testTable()
	heat := filepath.Join(dir, "map.png")
	if err := HeatMap(contactmap.New(T), "Contact map", heat); err != nil {
		Te.Fatal(err)
	}
	checkFile(Te, heat)
	bars := filepath.Join(dir, "bars.svg")
	if err := Bars(T, 3, "Top pairs", bars); err != nil {
		Te.Fatal(err)
	}
	checkFile(Te, bars)
	triples := []tri.ResidueTriple{{Frame: 1}, {Frame: 1}, {Frame: 3}}
	hist := filepath.Join(dir, "frames.png")
	if err := FrameHistogram(histo.FrameCounts(triples, []int{1, 2, 3}), "Contacts per frame", hist); err != nil {
		Te.Fatal(err)
	}
	checkFile(Te, hist)
}

func TestHeatMapSingleValue(Te *testing.T) {
	T := &tri.Table{Rows: []tri.AggregateRow{{Anchor: 1, Prot: 2, Count: 4}}}
	name := filepath.Join(Te.TempDir(), "single.png")
	if err := HeatMap(contactmap.New(T), "", name); err != nil {
		Te.Fatal(err)
	}
	checkFile(Te, name)
}

func TestPlotsEmpty(Te *testing.T) {
	dir := Te.TempDir()
	if err := HeatMap(contactmap.New(&tri.Table{}), "", filepath.Join(dir, "a.png")); err == nil {
		Te.Errorf("an empty map should not be plotted")
	}
	if err := Bars(&tri.Table{}, 5, "", filepath.Join(dir, "b.png")); err == nil {
		Te.Errorf("an empty table should not be plotted")
	}
}

func TestResidueTicks(Te *testing.T) {
	ids := make([]int, 60)
	for i := range ids {
		ids[i] = i + 1
	}
	ticks := residueTicks(ids)
	if len(ticks) != 60 {
		Te.Fatalf("expected 60 ticks, got %d", len(ticks))
	}
	labeled := 0
	for _, t := range ticks {
		if t.Label != "" {
			labeled++
		}
	}
	if labeled > maxLabels {
		Te.Errorf("%d labels, expected at most %d", labeled, maxLabels)
	}
	if ticks[0].Label != "1" {
		Te.Errorf("the first tick should be labeled")
	}
}
