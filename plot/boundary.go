// Package plot draws two-feature datasets together with the decision line of
// a trained perceptron.
package plot

import (
	"image/color"
	"math"

	"github.com/YuminosukeSato/pla/dataset"
	"github.com/YuminosukeSato/pla/pkg/errors"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size is the width and height of saved images.
const Size = 5 * vg.Inch

var (
	positiveColor = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	negativeColor = color.RGBA{R: 255, G: 60, A: 255}
	lineColor     = color.RGBA{A: 255}
)

// Render builds a plot of ds and, when weights is not nil, the line
// w0 + w1·x1 + w2·x2 = 0. ds must have exactly two features and weights, if
// given, exactly three entries (bias first).
func Render(ds *dataset.Dataset, weights []float64) (*gonumplot.Plot, error) {
	const op = "plot.Render"

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if ds.NumFeatures() != 2 {
		return nil, errors.NewDimensionError(op, 2, ds.NumFeatures(), 1)
	}
	if weights != nil && len(weights) != 3 {
		return nil, errors.NewDimensionError(op, 3, len(weights), 0)
	}

	p := gonumplot.New()
	p.Title.Text = "Perceptron decision boundary"
	p.X.Label.Text, p.Y.Label.Text = "x1", "x2"
	if len(ds.Features) == 2 {
		p.X.Label.Text, p.Y.Label.Text = ds.Features[0], ds.Features[1]
	}

	var pos, neg plotter.XYs
	for i, s := range ds.Samples {
		pt := plotter.XY{X: s[0], Y: s[1]}
		if ds.Labelled() && ds.Labels[i] < 0 {
			neg = append(neg, pt)
		} else {
			pos = append(pos, pt)
		}
	}
	if err := addScatter(p, pos, positiveColor, draw.CircleGlyph{}, "+1"); err != nil {
		return nil, err
	}
	if err := addScatter(p, neg, negativeColor, draw.CrossGlyph{}, "-1"); err != nil {
		return nil, err
	}

	if weights != nil {
		xmin, xmax, ymin, ymax := bounds(ds.Samples)
		if seg, ok := boundarySegment(weights, xmin, xmax, ymin, ymax); ok {
			l, err := plotter.NewLine(seg)
			if err != nil {
				return nil, errors.Wrap(err, "boundary line")
			}
			l.Color = lineColor
			l.Width = vg.Points(2)
			p.Add(l)
			p.Legend.Add("boundary", l)
		}
		p.X.Min, p.X.Max = xmin, xmax
		p.Y.Min, p.Y.Max = ymin, ymax
	}
	return p, nil
}

// DecisionBoundary renders ds and weights and writes the image to path. The
// format follows the file extension (.png, .svg, .pdf, ...).
func DecisionBoundary(ds *dataset.Dataset, weights []float64, path string) error {
	p, err := Render(ds, weights)
	if err != nil {
		return err
	}
	if err := p.Save(Size, Size, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

func addScatter(p *gonumplot.Plot, pts plotter.XYs, c color.Color, shape draw.GlyphDrawer, name string) error {
	if len(pts) == 0 {
		return nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrapf(err, "scatter %s", name)
	}
	s.Color = c
	s.Shape = shape
	s.Radius = vg.Points(3)
	p.Add(s)
	p.Legend.Add(name, s)
	return nil
}

// bounds returns the data range padded by 10% on each side.
func bounds(samples [][]float64) (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, s := range samples {
		xmin, xmax = math.Min(xmin, s[0]), math.Max(xmax, s[0])
		ymin, ymax = math.Min(ymin, s[1]), math.Max(ymax, s[1])
	}
	pad := func(lo, hi float64) (float64, float64) {
		d := 0.1 * (hi - lo)
		if d == 0 {
			d = 1
		}
		return lo - d, hi + d
	}
	xmin, xmax = pad(xmin, xmax)
	ymin, ymax = pad(ymin, ymax)
	return xmin, xmax, ymin, ymax
}

// boundarySegment returns the endpoints of w0 + w1·x + w2·y = 0 across the
// x range, or across the y range when the line is vertical. It reports false
// when both feature weights are zero.
func boundarySegment(w []float64, xmin, xmax, ymin, ymax float64) (plotter.XYs, bool) {
	w0, w1, w2 := w[0], w[1], w[2]
	switch {
	case w2 != 0:
		y := func(x float64) float64 { return -(w0 + w1*x) / w2 }
		return plotter.XYs{{X: xmin, Y: y(xmin)}, {X: xmax, Y: y(xmax)}}, true
	case w1 != 0:
		x := -w0 / w1
		return plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}}, true
	default:
		return nil, false
	}
}
