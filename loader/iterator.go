package loader

import (
	"math/rand/v2"

	"github.com/signlab/isrgraph/graph"
)

// Iterator yields fixed-size batches over one partition, in the manner of
// bufio.Scanner:
//
//	for it.Next() {
//		b := it.Batch()
//	}
//	it.Reset() // next epoch
//
// The final batch of an epoch may be smaller than the batch size.
// Iterators are not safe for concurrent use.
type Iterator struct {
	name      string
	records   []*graph.Record
	batchSize int
	edges     edgeSource

	shuffle bool
	rng     *rand.Rand
	order   []int

	cursor  int
	current *Batch
}

func newIterator(name string, records []*graph.Record, batchSize int, edges edgeSource, shuffle bool, seed uint64) *Iterator {
	it := &Iterator{
		name:      name,
		records:   records,
		batchSize: batchSize,
		edges:     edges,
		shuffle:   shuffle,
		order:     make([]int, len(records)),
	}
	for i := range it.order {
		it.order[i] = i
	}
	if shuffle {
		it.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		it.permute()
	}
	return it
}

func (it *Iterator) permute() {
	it.rng.Shuffle(len(it.order), func(i, j int) {
		it.order[i], it.order[j] = it.order[j], it.order[i]
	})
}

// Name is the partition name, e.g. "train" or "test/1".
func (it *Iterator) Name() string { return it.name }

// Len is the number of graphs per epoch.
func (it *Iterator) Len() int { return len(it.records) }

// NumBatches is the number of batches per epoch.
func (it *Iterator) NumBatches() int {
	return (len(it.records) + it.batchSize - 1) / it.batchSize
}

// Shuffled reports whether each epoch visits graphs in a new random order.
func (it *Iterator) Shuffled() bool { return it.shuffle }

// Next collates the next batch. It returns false at the end of the epoch.
func (it *Iterator) Next() bool {
	if it.cursor >= len(it.order) {
		it.current = nil
		return false
	}

	end := min(it.cursor+it.batchSize, len(it.order))
	chunk := make([]*graph.Record, 0, end-it.cursor)
	for _, idx := range it.order[it.cursor:end] {
		chunk = append(chunk, it.records[idx])
	}
	it.cursor = end
	it.current = collate(chunk, it.edges)
	return true
}

// Batch returns the batch produced by the last successful Next.
func (it *Iterator) Batch() *Batch { return it.current }

// Reset starts a new epoch, reshuffling when the iterator shuffles.
func (it *Iterator) Reset() {
	it.cursor = 0
	it.current = nil
	if it.shuffle {
		it.permute()
	}
}
