package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/signlab/isrgraph/errors"
)

// SkippedVideo is a metadata instance left out of a build.
type SkippedVideo struct {
	VideoID string
	Reason  string
}

// Build is one recorded dataset build.
type Build struct {
	ID        string
	CreatedAt time.Time
	MaxFrames int // F_max of the template
	Videos    int // records produced

	Train      int
	Val        int
	Test       int // all three test views
	Unassigned int

	// Config is a TOML snapshot of the effective configuration.
	Config string

	// SkippedCount is always set; Skipped is only loaded by Get.
	SkippedCount int
	Skipped      []SkippedVideo
}

// BuildStore records dataset builds in the builds table.
type BuildStore struct {
	db *sql.DB
}

// NewBuildStore wraps a migrated database.
func NewBuildStore(db *sql.DB) *BuildStore {
	return &BuildStore{db: db}
}

// Record inserts b and its skipped videos in one transaction. An empty ID
// is filled with a new uuid and a zero CreatedAt with the current time.
func (s *BuildStore) Record(ctx context.Context, b *Build) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	b.SkippedCount = len(b.Skipped)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin build transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (id, created_at, max_frames, videos, skipped, train, val, test, unassigned, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.CreatedAt, b.MaxFrames, b.Videos, b.SkippedCount, b.Train, b.Val, b.Test, b.Unassigned, b.Config)
	if err != nil {
		return errors.Wrapf(err, "insert build %s", b.ID)
	}

	for _, sk := range b.Skipped {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO build_skipped (build_id, video_id, reason) VALUES (?, ?, ?)",
			b.ID, sk.VideoID, sk.Reason); err != nil {
			return errors.Wrapf(err, "insert skipped video %s for build %s", sk.VideoID, b.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit build %s", b.ID)
	}
	return nil
}

const buildColumns = "id, created_at, max_frames, videos, skipped, train, val, test, unassigned, config"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuild(row rowScanner) (Build, error) {
	var b Build
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.MaxFrames, &b.Videos, &b.SkippedCount,
		&b.Train, &b.Val, &b.Test, &b.Unassigned, &b.Config); err != nil {
		return Build{}, err
	}
	return b, nil
}

// List returns the most recent builds first. limit <= 0 returns all.
// Skipped videos are not loaded; use Get for those.
func (s *BuildStore) List(ctx context.Context, limit int) ([]Build, error) {
	query := "SELECT " + buildColumns + " FROM builds ORDER BY created_at DESC, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query builds")
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan build")
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate builds")
	}
	return builds, nil
}

// Get returns one build with its skipped videos.
func (s *BuildStore) Get(ctx context.Context, id string) (Build, error) {
	b, err := scanBuild(s.db.QueryRowContext(ctx, "SELECT "+buildColumns+" FROM builds WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return Build{}, errors.NewNotFoundError("build %s", id)
	}
	if err != nil {
		return Build{}, errors.Wrapf(err, "query build %s", id)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT video_id, reason FROM build_skipped WHERE build_id = ? ORDER BY video_id", id)
	if err != nil {
		return Build{}, errors.Wrapf(err, "query skipped videos for build %s", id)
	}
	defer rows.Close()

	for rows.Next() {
		var sk SkippedVideo
		if err := rows.Scan(&sk.VideoID, &sk.Reason); err != nil {
			return Build{}, errors.Wrap(err, "scan skipped video")
		}
		b.Skipped = append(b.Skipped, sk)
	}
	return b, errors.Wrap(rows.Err(), "iterate skipped videos")
}
