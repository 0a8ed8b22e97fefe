package graph

import (
	"gonum.org/v1/gonum/mat"
)

// Edge is a directed edge between two global node indices. A node's global
// index is frame*Nodes + landmark.
type Edge struct {
	From int
	To   int
}

// Record is the assembled spatio-temporal graph of one video. Records are
// created once by Assemble and never mutated afterward.
type Record struct {
	VideoID string
	Label   int
	Gloss   string
	Split   string
	View    int

	// FrameCount is the number of frames represented in the graph (after
	// the max-frames cap). SourceFrameCount is the reduced pose length
	// before capping.
	FrameCount       int
	SourceFrameCount int
	// PaddedFrames is non-zero when Pad resized the node tensors to a fixed
	// frame count; Features and Positions then cover PaddedFrames frames.
	PaddedFrames int

	// Features is (frames*Nodes) × Nodes: row i is the one-hot role of node i%Nodes.
	Features *mat.Dense
	// Positions is frames × 2*Nodes, columns x0,y0,x1,y1,...
	Positions *mat.Dense

	SpatialEdges  []Edge
	TemporalEdges []Edge
}

// NumNodes is the number of node rows in the graph, including padding.
func (r *Record) NumNodes() int {
	rows, _ := r.Features.Dims()
	return rows
}

// Nodes is the per-frame node count.
func (r *Record) Nodes() int {
	_, cols := r.Features.Dims()
	return cols
}

// SpatioTemporalEdges returns spatial edges followed by temporal edges in
// a fresh slice.
func (r *Record) SpatioTemporalEdges() []Edge {
	out := make([]Edge, 0, len(r.SpatialEdges)+len(r.TemporalEdges))
	out = append(out, r.SpatialEdges...)
	return append(out, r.TemporalEdges...)
}

// NodePositions returns positions with one row per node: (frames*Nodes) × 2.
// The result shares storage with r.Positions.
func (r *Record) NodePositions() *mat.Dense {
	raw := r.Positions.RawMatrix()
	return mat.NewDense(raw.Rows*raw.Cols/2, 2, raw.Data[:raw.Rows*raw.Cols])
}
