package graph

import (
	"gonum.org/v1/gonum/mat"

	"github.com/signlab/isrgraph/errors"
)

// Pad returns a copy of r whose node tensors cover exactly frames frames:
// shorter graphs get zero rows appended to Features and Positions, longer
// ones are truncated together with their edges. Padding is opt-in; Assemble
// never pads.
func Pad(r *Record, frames int) (*Record, error) {
	if frames < 1 {
		return nil, errors.NewInvalidRequestError("pad target must be >= 1 frame, got %d", frames)
	}
	nodes := r.Nodes()
	kept := r.FrameCount
	if kept > frames {
		kept = frames
	}

	out := *r
	out.PaddedFrames = frames
	out.FrameCount = kept
	out.Features = resizeRows(r.Features, frames*nodes)
	out.Positions = resizeRows(r.Positions, frames)

	if kept < r.FrameCount {
		perFrame := len(r.SpatialEdges) / r.FrameCount
		out.SpatialEdges = r.SpatialEdges[: kept*perFrame : kept*perFrame]
		temporal := (kept - 1) * nodes
		out.TemporalEdges = r.TemporalEdges[:temporal:temporal]
	}
	return &out, nil
}

// resizeRows copies m into a rows × cols matrix, zero-filling or dropping
// trailing rows.
func resizeRows(m *mat.Dense, rows int) *mat.Dense {
	have, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	n := have
	if rows < n {
		n = rows
	}
	if n > 0 {
		out.Slice(0, n, 0, cols).(*mat.Dense).Copy(m.Slice(0, n, 0, cols))
	}
	return out
}
