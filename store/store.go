// Package store reads and writes the external inputs of a dataset build:
// annotation metadata, per-video raw keypoints and the build history.
package store

import (
	"context"

	"github.com/signlab/isrgraph/keypoint"
)

// KeypointStore loads raw keypoints by video id.
// Implementations return errors.ErrNotFound for unknown videos.
type KeypointStore interface {
	Load(ctx context.Context, videoID string) (keypoint.Raw, error)
}

// KeypointWriter persists raw keypoints by video id, replacing any existing entry.
type KeypointWriter interface {
	Put(ctx context.Context, videoID string, raw keypoint.Raw) error
}
