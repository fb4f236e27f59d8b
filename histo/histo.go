// Package histo gives per-frame statistics of three-way contacts: how many
// contacts each frame has, a histogram of those numbers, and summary values.
package histo

import (
	"fmt"
	"sort"
	"strings"

	tri "github.com/rmera/tricontact"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram of the number of contacts per frame. It keeps the raw
// per-frame values, so the summary doesn't depend on the dividers.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
	frames     []int
	raw        []float64
}

// Summary condenses the per-frame contact numbers.
type Summary struct {
	Frames int //frames considered, including those without contacts
	Busy   int //frames with at least one contact
	Total  float64
	Mean   float64
	StdDev float64
	Max    float64
}

func (S Summary) String() string {
	return fmt.Sprintf("frames: %d (%d with contacts) total: %.0f mean: %.3f std: %.3f max: %.0f", S.Frames, S.Busy, S.Total, S.Mean, S.StdDev, S.Max)
}

// FrameCounts counts the triples of each frame. Frames listed in frames but absent
// from triples count as 0. frames can be nil, in which case only frames with triples
// are considered. The histogram has one bin per integer value, from 0 to the
// largest count.
func FrameCounts(triples []tri.ResidueTriple, frames []int) *Data {
	perframe := make(map[int]int, len(frames))
	for _, f := range frames {
		perframe[f] = 0
	}
	for _, t := range triples {
		perframe[t.Frame]++
	}
	D := new(Data)
	D.frames = make([]int, 0, len(perframe))
	for f := range perframe {
		D.frames = append(D.frames, f)
	}
	sort.Ints(D.frames)
	D.raw = make([]float64, len(D.frames))
	for i, f := range D.frames {
		D.raw[i] = float64(perframe[f])
	}
	max := 0.0
	if len(D.raw) > 0 {
		max = floats.Max(D.raw)
	}
	D.ReHisto(IntDividers(int(max)))
	return D
}

// IntDividers returns the dividers 0, 1, ..., max+1, so each integer in [0, max] has its own bin.
func IntDividers(max int) []float64 {
	if max < 0 {
		max = 0
	}
	d := make([]float64, max+2)
	floats.Span(d, 0, float64(max+1))
	return d
}

// ReHisto rebuilds the histogram with the given dividers, from the raw per-frame values.
// Values outside the dividers are left out of the histogram, not of the summary.
func (D *Data) ReHisto(dividers []float64) {
	D.dividers = append(D.dividers[:0], dividers...)
	data := append([]float64(nil), D.raw...)
	sort.Float64s(data)
	//stat.Histogram panics with values outside the dividers, so those go first.
	maxi := sort.SearchFloat64s(data, dividers[len(dividers)-1])
	mini := sort.SearchFloat64s(data, dividers[0])
	data = data[mini:maxi]
	D.total = len(data)
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
	D.normalized = false
}

// Frames returns the frame numbers, in ascending order.
func (D *Data) Frames() []int { return D.frames }

// PerFrame returns the number of contacts of each frame, in the order of Frames.
func (D *Data) PerFrame() []float64 { return D.raw }

// Dividers returns the bin limits of the histogram.
func (D *Data) Dividers() []float64 { return D.dividers }

// View returns the histogram. Bin i goes from divider i (included) to divider i+1.
func (D *Data) View() []float64 { return D.histo }

// Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool { return D.normalized }

// Normalize scales the histogram so the bins add up to 1. It does nothing
// if the histogram is already normalized or empty. ReHisto goes back to counts.
func (D *Data) Normalize() {
	if D.total <= 0 || D.normalized {
		return
	}
	D.normalized = true
	floats.Scale(1/float64(D.total), D.histo)
}

// Summary returns the summary values of the per-frame contact numbers.
func (D *Data) Summary() Summary {
	var S Summary
	S.Frames = len(D.raw)
	if S.Frames == 0 {
		return S
	}
	for _, v := range D.raw {
		if v > 0 {
			S.Busy++
		}
	}
	S.Total = floats.Sum(D.raw)
	S.Max = floats.Max(D.raw)
	if S.Frames > 1 {
		S.Mean, S.StdDev = stat.MeanStdDev(D.raw, nil)
	} else {
		S.Mean = D.raw[0]
	}
	return S
}

// String prints the histogram in two lines, the bins and their values.
func (D *Data) String() string {
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.0f-%-4.0f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return fmt.Sprintf("Normalized: %v, Frames: %d\n%s\n%s", D.normalized, D.total, strings.Join(d, " "), strings.Join(h, " "))
}
