package loader

import (
	"github.com/signlab/isrgraph/graph"
)

// Split names matched exactly against Record.Split.
const (
	SplitTrain = "train"
	SplitVal   = "val"
	SplitTest  = "test"
)

// NumTestViews is the number of camera views the test split is divided by.
const NumTestViews = 3

// Partitions groups records by split, and test records by camera view.
// Every input record lands in exactly one group.
type Partitions struct {
	Train []*graph.Record
	Val   []*graph.Record
	Test  [NumTestViews][]*graph.Record
	// Unassigned holds records with an unknown split or a test view
	// outside [0, NumTestViews).
	Unassigned []*graph.Record
}

// Partition splits records preserving input order within each group.
func Partition(records []*graph.Record) Partitions {
	var p Partitions
	for _, r := range records {
		switch r.Split {
		case SplitTrain:
			p.Train = append(p.Train, r)
		case SplitVal:
			p.Val = append(p.Val, r)
		case SplitTest:
			if r.View >= 0 && r.View < NumTestViews {
				p.Test[r.View] = append(p.Test[r.View], r)
			} else {
				p.Unassigned = append(p.Unassigned, r)
			}
		default:
			p.Unassigned = append(p.Unassigned, r)
		}
	}
	return p
}

// Len is the total number of partitioned records.
func (p Partitions) Len() int {
	n := len(p.Train) + len(p.Val) + len(p.Unassigned)
	for _, view := range p.Test {
		n += len(view)
	}
	return n
}
