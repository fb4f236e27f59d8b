package chemplot

import (
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
)

//Some internal convenience functions.

//maxLabels is the largest number of tick labels put on an axis.
const maxLabels = 25

//residueTicks returns ticks at 0, 1, ..., len(ids)-1 labeled with the residue
//ids. If there are too many, only every n-th one gets a label.
func residueTicks(ids []int) plot.ConstantTicks {
	step := 1
	if len(ids) > maxLabels {
		step = (len(ids) + maxLabels - 1) / maxLabels
	}
	ticks := make(plot.ConstantTicks, 0, len(ids))
	for i, v := range ids {
		t := plot.Tick{Value: float64(i)}
		if i%step == 0 {
			t.Label = strconv.Itoa(v)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = float64(int(h))
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

//colors returns the key-th of steps colors spread over the hue circle, skipping
//the yellows, which are hard to see on white.
func colors(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	r, g, b := iHVS2RGB(h, 1, 1)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
