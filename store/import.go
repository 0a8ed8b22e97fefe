package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/signlab/isrgraph/errors"
)

// ImportResult summarizes an Import run.
type ImportResult struct {
	Imported int
	Failed   []string
}

// Import copies every video in src into dst. A video that fails to decode
// is logged and listed in Failed; write errors abort the import.
func Import(ctx context.Context, src *DirStore, dst KeypointWriter, logger *zap.SugaredLogger) (ImportResult, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger = logger.Named("import")

	var result ImportResult

	ids, err := src.List(ctx)
	if err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		raw, err := src.Load(ctx, id)
		if err != nil {
			logger.Warnw("Skipping unreadable keypoints", "video_id", id, "error", err)
			result.Failed = append(result.Failed, id)
			continue
		}

		if err := dst.Put(ctx, id, raw); err != nil {
			return result, errors.Wrapf(err, "import %s", src.Dir())
		}
		result.Imported++
	}

	logger.Infow("Import complete", "path", src.Dir(), "count", result.Imported, "skipped", len(result.Failed))
	return result, nil
}
