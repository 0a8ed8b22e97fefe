// Package graph builds fixed-topology spatio-temporal graphs from reduced
// pose sequences.
//
// A Template is computed once per dataset for the longest video (F_max
// frames). Its edge lists are ordered frame-major then edge-minor, so the
// graph of any shorter video is a prefix of the template. Assemble relies on
// that ordering to slice instead of rebuilding.
package graph

import (
	"gonum.org/v1/gonum/mat"

	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/keypoint"
	"github.com/signlab/isrgraph/skeleton"
)

// Template is the dataset-wide topology: spatial edges, temporal edges and
// tiled one-hot role features covering MaxFrames frames. Immutable after
// NewTemplate; safe to share across goroutines.
type Template struct {
	maxFrames int
	nodes     int
	inward    []skeleton.Edge

	spatial  []Edge
	temporal []Edge
	// roles is Nodes × (MaxFrames*Nodes): the identity tiled along columns
	roles *mat.Dense
}

// NewTemplate builds the topology for maxFrames frames of sk.
func NewTemplate(maxFrames int, sk skeleton.Skeleton) (*Template, error) {
	if maxFrames < 1 {
		return nil, errors.NewInvalidRequestError("template needs at least 1 frame, got %d", maxFrames)
	}
	if err := sk.Validate(); err != nil {
		return nil, err
	}

	t := &Template{
		maxFrames: maxFrames,
		nodes:     sk.Nodes,
		inward:    append([]skeleton.Edge(nil), sk.Inward...),
	}
	t.spatial = buildSpatialEdges(maxFrames, sk.Nodes, sk.Inward)
	t.temporal = buildTemporalEdges(maxFrames, sk.Nodes)
	t.roles = buildRoleFeatures(maxFrames, sk.Nodes)
	return t, nil
}

func buildSpatialEdges(frames, nodes int, inward []skeleton.Edge) []Edge {
	edges := make([]Edge, 0, frames*len(inward))
	for f := 0; f < frames; f++ {
		offset := f * nodes
		for _, e := range inward {
			edges = append(edges, Edge{From: offset + e.From, To: offset + e.To})
		}
	}
	return edges
}

func buildTemporalEdges(frames, nodes int) []Edge {
	if frames < 2 {
		return nil
	}
	edges := make([]Edge, 0, (frames-1)*nodes)
	for f := 0; f < frames-1; f++ {
		for n := 0; n < nodes; n++ {
			edges = append(edges, Edge{From: f*nodes + n, To: (f+1)*nodes + n})
		}
	}
	return edges
}

func buildRoleFeatures(frames, nodes int) *mat.Dense {
	roles := mat.NewDense(nodes, frames*nodes, nil)
	for f := 0; f < frames; f++ {
		for n := 0; n < nodes; n++ {
			roles.Set(n, f*nodes+n, 1)
		}
	}
	return roles
}

// MaxFrames is F_max, the frame count the template covers.
func (t *Template) MaxFrames() int { return t.maxFrames }

// Nodes is the per-frame node count N.
func (t *Template) Nodes() int { return t.nodes }

// EdgesPerFrame is the number of inward edges replicated in every frame.
func (t *Template) EdgesPerFrame() int { return len(t.inward) }

// SpatialEdgeCount returns the number of spatial edges for frames frames.
func (t *Template) SpatialEdgeCount(frames int) int {
	return frames * len(t.inward)
}

// TemporalEdgeCount returns the number of temporal edges for frames frames.
func (t *Template) TemporalEdgeCount(frames int) int {
	if frames < 2 {
		return 0
	}
	return (frames - 1) * t.nodes
}

func (t *Template) checkFrames(frames int) error {
	if frames < 1 || frames > t.maxFrames {
		return errors.NewInvalidRequestError("frame count %d outside template range [1,%d]", frames, t.maxFrames)
	}
	return nil
}

// SpatialEdges returns the spatial edges of the first frames frames. The
// slice aliases template storage with its capacity clipped, so appending
// to it never writes into the template.
func (t *Template) SpatialEdges(frames int) ([]Edge, error) {
	if err := t.checkFrames(frames); err != nil {
		return nil, err
	}
	n := t.SpatialEdgeCount(frames)
	return t.spatial[:n:n], nil
}

// TemporalEdges returns the temporal edges linking the first frames frames.
// Empty for a single frame.
func (t *Template) TemporalEdges(frames int) ([]Edge, error) {
	if err := t.checkFrames(frames); err != nil {
		return nil, err
	}
	n := t.TemporalEdgeCount(frames)
	if n == 0 {
		return []Edge{}, nil
	}
	return t.temporal[:n:n], nil
}

// RoleFeatures returns a fresh (frames*Nodes) × Nodes matrix: the first
// frames*Nodes columns of the tiled identity, transposed to node-major.
func (t *Template) RoleFeatures(frames int) (*mat.Dense, error) {
	if err := t.checkFrames(frames); err != nil {
		return nil, err
	}
	view := t.roles.Slice(0, t.nodes, 0, frames*t.nodes).T()
	return mat.DenseCopyOf(view), nil
}

// PerFrameEdges returns the shared single-frame edge set (the inward edges
// with no frame offset).
func (t *Template) PerFrameEdges() []Edge {
	out := make([]Edge, len(t.inward))
	for i, e := range t.inward {
		out[i] = Edge{From: e.From, To: e.To}
	}
	return out
}

// MaxFrameCount returns the largest frame count among poses. It must be
// computed over the whole dataset before any video is assembled.
func MaxFrameCount(poses []keypoint.Pose) int {
	maxFrames := 0
	for _, p := range poses {
		if p.Frames > maxFrames {
			maxFrames = p.Frames
		}
	}
	return maxFrames
}
