package dataset

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/signlab/isrgraph/config"
	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/graph"
	"github.com/signlab/isrgraph/keypoint"
	"github.com/signlab/isrgraph/skeleton"
	"github.com/signlab/isrgraph/store"
)

// Reader builds a Dataset from metadata and a keypoint store.
type Reader struct {
	Store        store.KeypointStore
	Preprocessor *keypoint.Preprocessor
	Skeleton     skeleton.Skeleton
	// MaxFrames caps the frames kept per video; <= 0 keeps all.
	MaxFrames int
	// Workers bounds concurrent per-video work; <= 1 is sequential.
	Workers int
	Logger  *zap.SugaredLogger
}

// NewReader wires a Reader from configuration.
func NewReader(cfg *config.Config, ks store.KeypointStore, logger *zap.SugaredLogger) (*Reader, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	sk := skeleton.Holistic27
	if path := cfg.SkeletonPath(); path != "" {
		loaded, err := skeleton.LoadFile(path)
		if err != nil {
			return nil, err
		}
		sk = loaded
	}

	opts := keypoint.Options{
		Downsample:     cfg.Preprocess.Downsample,
		DownsampleRate: cfg.Preprocess.DownsampleRate,
	}
	if cfg.Preprocess.ScaleNorm {
		opts.Normalizer = keypoint.NewCenterAndScale()
	}
	pre, err := keypoint.NewPreprocessor(opts)
	if err != nil {
		return nil, err
	}

	if sk.Nodes != pre.Nodes() || sk.Nodes != cfg.Graph.NNodes {
		return nil, errors.NewInvalidConfigError("skeleton %s has %d nodes, node selection has %d, graph.n_nodes is %d",
			sk.Name, sk.Nodes, pre.Nodes(), cfg.Graph.NNodes)
	}

	return &Reader{
		Store:        ks,
		Preprocessor: pre,
		Skeleton:     sk,
		MaxFrames:    cfg.Graph.MaxFrames,
		Workers:      cfg.Build.Workers,
		Logger:       logger,
	}, nil
}

// instance is one metadata entry resolved against the vocabulary.
type instance struct {
	videoID string
	label   int
	gloss   string
	split   string
	view    int
}

// Build loads, reduces and assembles every video in md. Videos with no
// keypoints are skipped and reported in Dataset.Skipped; any other error
// fails the build.
//
// F_max is the maximum over all loaded videos, so every pose is reduced
// before the first record is assembled.
func (r *Reader) Build(ctx context.Context, md store.Metadata) (*Dataset, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("dataset")
	start := time.Now()

	merged := md.Merged()
	vocab := NewVocabulary(merged)
	instances, skipped := r.resolve(merged, vocab, log)

	poses, err := r.reduce(ctx, instances)
	if err != nil {
		return nil, err
	}

	var kept []instance
	var keptPoses []keypoint.Pose
	for i, inst := range instances {
		if poses[i] == nil {
			log.Debugw("Skipping video without keypoints", "video_id", inst.videoID, "gloss", inst.gloss)
			skipped = append(skipped, Skipped{VideoID: inst.videoID, Reason: ReasonMissing})
			continue
		}
		kept = append(kept, inst)
		keptPoses = append(keptPoses, *poses[i])
	}

	if len(kept) == 0 {
		return nil, errors.WithHint(
			errors.NewNotFoundError("no keypoints found for any of %d videos", len(instances)),
			"check dataset.poses and dataset.store",
		)
	}

	maxFrames := graph.MaxFrameCount(keptPoses)
	tmpl, err := graph.NewTemplate(maxFrames, r.Skeleton)
	if err != nil {
		return nil, err
	}

	records, err := r.assemble(ctx, tmpl, kept, keptPoses)
	if err != nil {
		return nil, err
	}

	log.Infow("Dataset built",
		"count", len(records),
		"skipped", len(skipped),
		"max_frames", maxFrames,
		"nodes", tmpl.Nodes(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return newDataset(tmpl, vocab, records, skipped), nil
}

// resolve flattens merged metadata into instances, dropping repeated video ids.
func (r *Reader) resolve(merged store.Metadata, vocab *Vocabulary, log *zap.SugaredLogger) ([]instance, []Skipped) {
	seen := make(map[string]bool)
	var out []instance
	var skipped []Skipped
	for _, entry := range merged {
		label, _ := vocab.Label(entry.Gloss)
		for _, inst := range entry.Instances {
			if seen[inst.VideoID] {
				log.Warnw("Duplicate video id in metadata", "video_id", inst.VideoID, "gloss", entry.Gloss)
				skipped = append(skipped, Skipped{VideoID: inst.VideoID, Reason: ReasonDuplicate})
				continue
			}
			seen[inst.VideoID] = true
			out = append(out, instance{
				videoID: inst.VideoID,
				label:   label,
				gloss:   entry.Gloss,
				split:   inst.Split,
				view:    inst.View,
			})
		}
	}
	return out, skipped
}

func (r *Reader) limit() int {
	if r.Workers < 1 {
		return 1
	}
	return r.Workers
}

// reduce loads and preprocesses every instance. A nil entry marks a video
// absent from the store.
func (r *Reader) reduce(ctx context.Context, instances []instance) ([]*keypoint.Pose, error) {
	poses := make([]*keypoint.Pose, len(instances))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())

	for i, inst := range instances {
		g.Go(func() error {
			raw, err := r.Store.Load(gctx, inst.videoID)
			if errors.IsNotFoundError(err) {
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "load video %s", inst.videoID)
			}

			pose, err := r.Preprocessor.Process(raw)
			if err != nil {
				return errors.Wrapf(err, "video %s", inst.videoID)
			}
			poses[i] = &pose
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return poses, nil
}

func (r *Reader) assemble(ctx context.Context, tmpl *graph.Template, kept []instance, poses []keypoint.Pose) ([]*graph.Record, error) {
	records := make([]*graph.Record, len(kept))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())

	for i, inst := range kept {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := graph.Assemble(tmpl, graph.Input{
				VideoID: inst.videoID,
				Label:   inst.label,
				Gloss:   inst.gloss,
				Split:   inst.split,
				View:    inst.view,
				Pose:    poses[i],
			}, r.MaxFrames)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
