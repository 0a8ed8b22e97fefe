// Package keypoint holds per-video landmark tensors and reduces raw
// holistic keypoints to the fixed node subset used to build graphs.
package keypoint

import (
	"github.com/signlab/isrgraph/errors"
)

// Channels is the number of coordinate channels kept from raw keypoints (x, y).
const Channels = 2

// Raw is a per-video keypoint tensor of shape (Frames, Landmarks, Dims),
// stored row-major. Only the first two dims are ever read.
type Raw struct {
	Frames    int
	Landmarks int
	Dims      int
	Data      []float64
}

// At returns the value at (frame, landmark, dim).
func (r Raw) At(f, l, d int) float64 {
	return r.Data[(f*r.Landmarks+l)*r.Dims+d]
}

// Validate checks that the declared shape is usable and consistent with Data.
func (r Raw) Validate() error {
	if r.Frames < 1 {
		return errors.NewShapeMismatchError("keypoints have %d frames, need at least 1", r.Frames)
	}
	if r.Dims < Channels {
		return errors.NewShapeMismatchError("keypoints have %d coordinate dims, need at least %d", r.Dims, Channels)
	}
	if r.Landmarks < 1 {
		return errors.NewShapeMismatchError("keypoints have %d landmarks", r.Landmarks)
	}
	if want := r.Frames * r.Landmarks * r.Dims; len(r.Data) != want {
		return errors.NewShapeMismatchError("keypoint data has %d values, shape (%d,%d,%d) needs %d",
			len(r.Data), r.Frames, r.Landmarks, r.Dims, want)
	}
	return nil
}

// Pose is a channel-major tensor of shape (2, Frames, Nodes): all x values
// frame by frame, then all y values.
type Pose struct {
	Frames int
	Nodes  int
	Data   []float64
}

// NewPose allocates a zeroed pose.
func NewPose(frames, nodes int) Pose {
	return Pose{Frames: frames, Nodes: nodes, Data: make([]float64, Channels*frames*nodes)}
}

func (p Pose) offset(c, f, n int) int {
	return (c*p.Frames+f)*p.Nodes + n
}

// At returns the coordinate for channel c (0=x, 1=y) of node n in frame f.
func (p Pose) At(c, f, n int) float64 {
	return p.Data[p.offset(c, f, n)]
}

// Set stores v at (c, f, n).
func (p Pose) Set(c, f, n int, v float64) {
	p.Data[p.offset(c, f, n)] = v
}

// Row returns the slice of channel c for frame f. It aliases p.Data.
func (p Pose) Row(c, f int) []float64 {
	start := p.offset(c, f, 0)
	return p.Data[start : start+p.Nodes]
}

// Clone returns a deep copy.
func (p Pose) Clone() Pose {
	out := Pose{Frames: p.Frames, Nodes: p.Nodes, Data: make([]float64, len(p.Data))}
	copy(out.Data, p.Data)
	return out
}

// Permute reorders raw (frame, landmark, dim) data to (channel, frame,
// landmark), dropping every dim past the first two.
func Permute(raw Raw) (Pose, error) {
	if err := raw.Validate(); err != nil {
		return Pose{}, err
	}
	out := NewPose(raw.Frames, raw.Landmarks)
	for c := 0; c < Channels; c++ {
		for f := 0; f < raw.Frames; f++ {
			row := out.Row(c, f)
			for l := range row {
				row[l] = raw.At(f, l, c)
			}
		}
	}
	return out, nil
}

// SelectNodes keeps the listed node indices in the given order. The
// position in indices becomes the new node id.
func SelectNodes(p Pose, indices []int) (Pose, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= p.Nodes {
			return Pose{}, errors.NewShapeMismatchError("node index %d outside pose with %d nodes", idx, p.Nodes)
		}
	}
	out := NewPose(p.Frames, len(indices))
	for c := 0; c < Channels; c++ {
		for f := 0; f < p.Frames; f++ {
			src := p.Row(c, f)
			dst := out.Row(c, f)
			for i, idx := range indices {
				dst[i] = src[idx]
			}
		}
	}
	return out, nil
}

// Downsample keeps every rate-th frame starting at frame 0, so a pose of F
// frames becomes ceil(F/rate) frames. No interpolation is done.
func Downsample(p Pose, rate int) (Pose, error) {
	if rate < 1 {
		return Pose{}, errors.NewInvalidConfigError("downsample rate must be >= 1, got %d", rate)
	}
	if rate == 1 {
		return p.Clone(), nil
	}
	frames := (p.Frames + rate - 1) / rate
	out := NewPose(frames, p.Nodes)
	for c := 0; c < Channels; c++ {
		for i := 0; i < frames; i++ {
			copy(out.Row(c, i), p.Row(c, i*rate))
		}
	}
	return out, nil
}
