package keypoint

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Normalizer transforms a reduced pose without changing its shape.
type Normalizer interface {
	Normalize(Pose) Pose
}

// NormalizerFunc adapts a plain function to Normalizer.
type NormalizerFunc func(Pose) Pose

// Normalize calls f(p).
func (f NormalizerFunc) Normalize(p Pose) Pose {
	return f(p)
}

// Shoulder node ids within Holistic27.
const (
	LeftShoulderNode  = 3
	RightShoulderNode = 4
)

// CenterAndScale translates every frame so the midpoint of two reference
// nodes sits at the origin, then divides by their distance. Frames whose
// reference distance is below MinScale are centered but not scaled.
type CenterAndScale struct {
	Left     int
	Right    int
	MinScale float64
}

// NewCenterAndScale returns the shoulder-referenced normalizer for Holistic27.
func NewCenterAndScale() CenterAndScale {
	return CenterAndScale{Left: LeftShoulderNode, Right: RightShoulderNode, MinScale: 1e-6}
}

// Normalize returns a normalized copy of p.
func (n CenterAndScale) Normalize(p Pose) Pose {
	out := p.Clone()
	for f := 0; f < out.Frames; f++ {
		xs := out.Row(0, f)
		ys := out.Row(1, f)

		cx := (xs[n.Left] + xs[n.Right]) / 2
		cy := (ys[n.Left] + ys[n.Right]) / 2
		scale := math.Hypot(xs[n.Left]-xs[n.Right], ys[n.Left]-ys[n.Right])

		floats.AddConst(-cx, xs)
		floats.AddConst(-cy, ys)
		if scale >= n.MinScale {
			floats.Scale(1/scale, xs)
			floats.Scale(1/scale, ys)
		}
	}
	return out
}
