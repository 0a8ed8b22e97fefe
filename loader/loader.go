// Package loader partitions graph records by split and camera view and
// batches each partition for a graph trainer.
package loader

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/signlab/isrgraph/config"
	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/graph"
)

// Temporal configuration modes.
const (
	// ModePerFrame gives every graph the same single-frame edge set.
	ModePerFrame = config.TemporalPerFrame
	// ModeSpatioTemporal gives every graph its own spatial and temporal edges.
	ModeSpatioTemporal = config.TemporalSpatioTemporal
)

// Options configures Build.
type Options struct {
	BatchSize int
	Mode      string
	// Seed drives the train shuffle.
	Seed uint64
	// PadFrames, when > 0, pads or truncates every graph to this many frames.
	PadFrames int
	// FrameEdges is the shared per-frame edge set, required by ModePerFrame.
	FrameEdges []graph.Edge
	Logger     *zap.SugaredLogger
}

// OptionsFromConfig reads the loader section. frameEdges is the template's
// per-frame edge set.
func OptionsFromConfig(cfg *config.Config, frameEdges []graph.Edge, logger *zap.SugaredLogger) Options {
	return Options{
		BatchSize:  cfg.Loader.BatchSize,
		Mode:       cfg.Loader.TemporalConfiguration,
		Seed:       cfg.Loader.Seed,
		PadFrames:  cfg.Loader.PadFrames,
		FrameEdges: frameEdges,
		Logger:     logger,
	}
}

func (o Options) validate() error {
	if o.BatchSize < 1 {
		return errors.NewInvalidConfigError("batch size must be >= 1, got %d", o.BatchSize)
	}
	if o.PadFrames < 0 {
		return errors.NewInvalidConfigError("pad frames must be >= 0, got %d", o.PadFrames)
	}
	switch o.Mode {
	case ModeSpatioTemporal:
	case ModePerFrame:
		if len(o.FrameEdges) == 0 {
			return errors.NewInvalidConfigError("per_frame mode needs the per-frame edge set")
		}
	default:
		return errors.NewInvalidConfigError("unknown temporal configuration %q", o.Mode)
	}
	return nil
}

func (o Options) edgeSource() edgeSource {
	if o.Mode == ModePerFrame {
		shared := o.FrameEdges
		return func(*graph.Record) []graph.Edge { return shared }
	}
	return func(r *graph.Record) []graph.Edge { return r.SpatioTemporalEdges() }
}

// Loaders holds one iterator per partition.
type Loaders struct {
	Train      *Iterator
	Val        *Iterator
	Test       [NumTestViews]*Iterator
	Unassigned []*graph.Record
}

// Counts is the number of graphs per partition.
type Counts struct {
	Train      int
	Val        int
	Test       [NumTestViews]int
	Unassigned int
}

// Counts reports partition sizes.
func (l *Loaders) Counts() Counts {
	c := Counts{Train: l.Train.Len(), Val: l.Val.Len(), Unassigned: len(l.Unassigned)}
	for v, it := range l.Test {
		c.Test[v] = it.Len()
	}
	return c
}

// TestTotal sums the test views.
func (c Counts) TestTotal() int {
	n := 0
	for _, v := range c.Test {
		n += v
	}
	return n
}

// Build partitions records and wraps each partition in an Iterator. Only
// the train iterator shuffles.
func Build(records []*graph.Record, opts Options) (*Loaders, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("loader")

	prepared, err := prepare(records, opts)
	if err != nil {
		return nil, err
	}

	parts := Partition(prepared)
	edges := opts.edgeSource()

	l := &Loaders{
		Train:      newIterator(SplitTrain, parts.Train, opts.BatchSize, edges, true, opts.Seed),
		Val:        newIterator(SplitVal, parts.Val, opts.BatchSize, edges, false, 0),
		Unassigned: parts.Unassigned,
	}
	for v := range l.Test {
		l.Test[v] = newIterator(fmt.Sprintf("%s/%d", SplitTest, v), parts.Test[v], opts.BatchSize, edges, false, 0)
	}

	for _, it := range l.iterators() {
		log.Infow("Partition ready", "split", it.Name(), "count", it.Len(), "batch_size", opts.BatchSize)
	}
	if len(parts.Unassigned) > 0 {
		log.Warnw("Records outside known splits and views", "count", len(parts.Unassigned))
	}

	return l, nil
}

func (l *Loaders) iterators() []*Iterator {
	return []*Iterator{l.Train, l.Val, l.Test[0], l.Test[1], l.Test[2]}
}

// prepare checks records share a node count and applies padding.
func prepare(records []*graph.Record, opts Options) ([]*graph.Record, error) {
	out := make([]*graph.Record, len(records))
	for i, r := range records {
		if r.Nodes() != records[0].Nodes() {
			return nil, errors.NewShapeMismatchError("video %s has %d nodes per frame, video %s has %d",
				r.VideoID, r.Nodes(), records[0].VideoID, records[0].Nodes())
		}
		if opts.PadFrames == 0 {
			out[i] = r
			continue
		}
		padded, err := graph.Pad(r, opts.PadFrames)
		if err != nil {
			return nil, errors.Wrapf(err, "pad video %s", r.VideoID)
		}
		out[i] = padded
	}
	return out, nil
}
