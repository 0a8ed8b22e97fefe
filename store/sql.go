package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"

	"go.uber.org/zap"

	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/keypoint"
)

// SQLStore keeps raw keypoints in the keypoints table as little-endian
// float64 blobs.
type SQLStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLStore wraps a migrated database.
func NewSQLStore(db *sql.DB, logger *zap.SugaredLogger) *SQLStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SQLStore{db: db, logger: logger.Named("sqlstore")}
}

// Load reads one video's keypoints.
func (s *SQLStore) Load(ctx context.Context, videoID string) (keypoint.Raw, error) {
	var raw keypoint.Raw
	var blob []byte

	err := s.db.QueryRowContext(ctx,
		"SELECT frames, landmarks, dims, data FROM keypoints WHERE video_id = ?", videoID,
	).Scan(&raw.Frames, &raw.Landmarks, &raw.Dims, &blob)
	if err == sql.ErrNoRows {
		return keypoint.Raw{}, errors.NewNotFoundError("keypoints for video %s", videoID)
	}
	if err != nil {
		return keypoint.Raw{}, errors.Wrapf(err, "query keypoints for video %s", videoID)
	}

	raw.Data, err = decodeFloats(blob)
	if err != nil {
		return keypoint.Raw{}, errors.Wrapf(err, "video %s", videoID)
	}
	if err := raw.Validate(); err != nil {
		return keypoint.Raw{}, errors.Wrapf(err, "video %s", videoID)
	}
	return raw, nil
}

// Put inserts or replaces one video's keypoints.
func (s *SQLStore) Put(ctx context.Context, videoID string, raw keypoint.Raw) error {
	if err := raw.Validate(); err != nil {
		return errors.Wrapf(err, "video %s", videoID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO keypoints (video_id, frames, landmarks, dims, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			frames = excluded.frames,
			landmarks = excluded.landmarks,
			dims = excluded.dims,
			data = excluded.data,
			imported_at = CURRENT_TIMESTAMP`,
		videoID, raw.Frames, raw.Landmarks, raw.Dims, encodeFloats(raw.Data))
	if err != nil {
		return errors.Wrapf(err, "store keypoints for video %s", videoID)
	}

	s.logger.Debugw("Stored keypoints", "video_id", videoID, "frames", raw.Frames)
	return nil
}

// Count returns the number of stored videos.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM keypoints").Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count keypoints")
	}
	return n, nil
}

func encodeFloats(values []float64) []byte {
	buf := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func decodeFloats(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, errors.NewShapeMismatchError("keypoint blob of %d bytes is not a float64 array", len(buf))
	}
	out := make([]float64, len(buf)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}
	return out, nil
}
