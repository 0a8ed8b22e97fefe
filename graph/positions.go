package graph

import (
	"gonum.org/v1/gonum/mat"

	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/keypoint"
)

// Flatten reshapes the first frames frames of p from (2, frames, N) to a
// frames × 2N matrix. Row f holds x0,y0,x1,y1,... for frame f in node order.
func Flatten(p keypoint.Pose, frames int) (*mat.Dense, error) {
	if frames < 1 || frames > p.Frames {
		return nil, errors.NewInvalidRequestError("cannot flatten %d of %d frames", frames, p.Frames)
	}
	data := make([]float64, frames*2*p.Nodes)
	for f := 0; f < frames; f++ {
		xs := p.Row(0, f)
		ys := p.Row(1, f)
		row := data[f*2*p.Nodes : (f+1)*2*p.Nodes]
		for n := 0; n < p.Nodes; n++ {
			row[2*n] = xs[n]
			row[2*n+1] = ys[n]
		}
	}
	return mat.NewDense(frames, 2*p.Nodes, data), nil
}

// Unflatten is the inverse of Flatten.
func Unflatten(m mat.Matrix) (keypoint.Pose, error) {
	frames, cols := m.Dims()
	if cols%2 != 0 {
		return keypoint.Pose{}, errors.NewShapeMismatchError("position matrix has odd column count %d", cols)
	}
	p := keypoint.NewPose(frames, cols/2)
	for f := 0; f < frames; f++ {
		for n := 0; n < p.Nodes; n++ {
			p.Set(0, f, n, m.At(f, 2*n))
			p.Set(1, f, n, m.At(f, 2*n+1))
		}
	}
	return p, nil
}
