package loader

import (
	"gonum.org/v1/gonum/mat"

	"github.com/signlab/isrgraph/graph"
)

// Batch is several graphs collated into one disjoint union. Node rows are
// stacked in graph order and edge endpoints are offset by the number of
// nodes of all preceding graphs.
type Batch struct {
	// Pos is (total nodes) × 2, one (x, y) row per node.
	Pos *mat.Dense
	// X is (total nodes) × Nodes, the stacked role features.
	X *mat.Dense
	// EdgeIndex holds sources in row 0 and targets in row 1.
	EdgeIndex [2][]int
	// Graph maps each node row to its graph's position in the batch.
	Graph []int
	// Ptr[i] is the first node row of graph i; Ptr[NumGraphs()] is the total.
	Ptr []int

	Y        []int
	NFrames  []int
	View     []int
	VideoIDs []string
}

// NumGraphs is the number of graphs in the batch.
func (b *Batch) NumGraphs() int { return len(b.Y) }

// NumNodes is the total node count.
func (b *Batch) NumNodes() int { return b.Ptr[len(b.Ptr)-1] }

// NumEdges is the total edge count.
func (b *Batch) NumEdges() int { return len(b.EdgeIndex[0]) }

// edgeSource picks the edges a record contributes in the configured mode.
type edgeSource func(r *graph.Record) []graph.Edge

// collate stacks records into a Batch. All records share the same per-frame
// node count.
func collate(records []*graph.Record, edges edgeSource) *Batch {
	nodes := records[0].Nodes()

	b := &Batch{
		Ptr:      make([]int, 1, len(records)+1),
		Y:        make([]int, len(records)),
		NFrames:  make([]int, len(records)),
		View:     make([]int, len(records)),
		VideoIDs: make([]string, len(records)),
	}

	total, edgeCount := 0, 0
	for _, r := range records {
		total += r.NumNodes()
		b.Ptr = append(b.Ptr, total)
		edgeCount += len(edges(r))
	}

	b.Pos = mat.NewDense(total, 2, nil)
	b.X = mat.NewDense(total, nodes, nil)
	b.Graph = make([]int, total)
	b.EdgeIndex[0] = make([]int, 0, edgeCount)
	b.EdgeIndex[1] = make([]int, 0, edgeCount)

	for i, r := range records {
		lo, hi := b.Ptr[i], b.Ptr[i+1]

		b.X.Slice(lo, hi, 0, nodes).(*mat.Dense).Copy(r.Features)
		b.Pos.Slice(lo, hi, 0, 2).(*mat.Dense).Copy(r.NodePositions())
		for n := lo; n < hi; n++ {
			b.Graph[n] = i
		}

		for _, e := range edges(r) {
			b.EdgeIndex[0] = append(b.EdgeIndex[0], e.From+lo)
			b.EdgeIndex[1] = append(b.EdgeIndex[1], e.To+lo)
		}

		b.Y[i] = r.Label
		b.NFrames[i] = r.FrameCount
		b.View[i] = r.View
		b.VideoIDs[i] = r.VideoID
	}

	return b
}
