// Package chemplot draws the results of a contact count: heat maps of contact
// maps, bar charts of the most frequent residue pairs, and per-frame histograms.
// The image format is taken from the extension of the file name (png, svg, pdf...).
package chemplot

import (
	"fmt"
	"math"

	tri "github.com/rmera/tricontact"
	"github.com/rmera/tricontact/contactmap"
	"github.com/rmera/tricontact/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the side of the saved plots.
var Size = 12 * vg.Centimeter

//grid adapts a contact map to plotter.GridXYZ. Columns are protein residues,
//rows anchor residues.
type grid struct {
	m *contactmap.Map
}

func (G grid) Dims() (int, int) {
	r, c := G.m.Dims()
	return c, r
}

func (G grid) Z(c, r int) float64 { return G.m.Value(r, c) }
func (G grid) X(c int) float64    { return float64(c) }
func (G grid) Y(r int) float64    { return float64(r) }

// HeatMap draws the contact map M and saves it to filename.
func HeatMap(M *contactmap.Map, title, filename string) error {
	if r, c := M.Dims(); r == 0 || c == 0 {
		return fmt.Errorf("chemplot.HeatMap: empty contact map")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Protein residue"
	p.Y.Label.Text = "Anchor residue"
	h := plotter.NewHeatMap(grid{M}, palette.Heat(12, 1))
	if h.Min == h.Max {
		h.Max = h.Min + 1 //a single value would leave the palette undefined.
	}
	p.Add(h)
	p.X.Tick.Marker = residueTicks(M.Partners())
	p.Y.Tick.Marker = residueTicks(M.Anchors())
	return p.Save(Size, Size, filename)
}

// Bars draws the n most frequent residue pairs of T (all of them if n <= 0) as
// a bar chart, and saves it to filename.
func Bars(T *tri.Table, n int, title, filename string) error {
	rows := T.Top(n)
	if len(rows) == 0 {
		return fmt.Errorf("chemplot.Bars: empty table")
	}
	vals := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, r := range rows {
		vals[i] = float64(r.Count)
		names[i] = fmt.Sprintf("%d-%d", r.Anchor, r.Prot)
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Contacts"
	p.X.Label.Text = "Anchor-protein residues"
	w := vg.Points(math.Max(2, 200/float64(len(rows))))
	bars, err := plotter.NewBarChart(vals, w)
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = colors(0, 1)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	return p.Save(Size, Size, filename)
}

// FrameHistogram draws the histogram of contacts per frame in D.
func FrameHistogram(D *histo.Data, title, filename string) error {
	h := D.View()
	if len(h) == 0 {
		return fmt.Errorf("chemplot.FrameHistogram: empty histogram")
	}
	div := D.Dividers()
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Contacts per frame"
	p.Y.Label.Text = "Frames"
	if D.Normalized() {
		p.Y.Label.Text = "Fraction of frames"
	}
	names := make([]string, len(h))
	for i := range h {
		names[i] = fmt.Sprintf("%.0f", div[i])
	}
	bars, err := plotter.NewBarChart(plotter.Values(h), vg.Points(math.Max(2, 200/float64(len(h)))))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = colors(1, 3)
	p.Add(bars)
	p.NominalX(names...)
	return p.Save(Size, Size, filename)
}
