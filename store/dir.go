package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/keypoint"
)

const keypointExt = ".json"

// DirStore reads <dir>/<video_id>.json files holding {"keypoints": [[[x, y, ...]]]}
// indexed frame, landmark, coordinate.
type DirStore struct {
	dir string
}

// keypointFile is the on-disk document of a DirStore entry.
type keypointFile struct {
	Keypoints [][][]float64 `json:"keypoints"`
}

// NewDirStore returns a store rooted at dir. The directory must exist.
func NewDirStore(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("keypoint directory %s", dir)
		}
		return nil, errors.Wrapf(err, "stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.NewInvalidConfigError("keypoint path %s is not a directory", dir)
	}
	return &DirStore{dir: dir}, nil
}

// Dir returns the root directory.
func (s *DirStore) Dir() string { return s.dir }

func (s *DirStore) path(videoID string) string {
	return filepath.Join(s.dir, videoID+keypointExt)
}

// Load reads and decodes one video's keypoints.
func (s *DirStore) Load(ctx context.Context, videoID string) (keypoint.Raw, error) {
	if err := ctx.Err(); err != nil {
		return keypoint.Raw{}, err
	}

	data, err := os.ReadFile(s.path(videoID))
	if err != nil {
		if os.IsNotExist(err) {
			return keypoint.Raw{}, errors.NewNotFoundError("keypoints for video %s", videoID)
		}
		return keypoint.Raw{}, errors.Wrapf(err, "read keypoints for video %s", videoID)
	}

	var doc keypointFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return keypoint.Raw{}, errors.Wrapf(err, "decode keypoints for video %s", videoID)
	}

	raw, err := fromNested(doc.Keypoints)
	if err != nil {
		return keypoint.Raw{}, errors.Wrapf(err, "video %s", videoID)
	}
	return raw, nil
}

// Put writes one video's keypoints, replacing any existing file.
func (s *DirStore) Put(ctx context.Context, videoID string, raw keypoint.Raw) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := raw.Validate(); err != nil {
		return errors.Wrapf(err, "video %s", videoID)
	}

	data, err := json.Marshal(keypointFile{Keypoints: toNested(raw)})
	if err != nil {
		return errors.Wrapf(err, "encode keypoints for video %s", videoID)
	}
	if err := os.WriteFile(s.path(videoID), data, 0644); err != nil {
		return errors.Wrapf(err, "write keypoints for video %s", videoID)
	}
	return nil
}

// List returns the video ids present in the directory, sorted.
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", s.dir)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, keypointExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, keypointExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// fromNested flattens a frames x landmarks x dims array, rejecting ragged input.
func fromNested(frames [][][]float64) (keypoint.Raw, error) {
	if len(frames) == 0 || len(frames[0]) == 0 {
		return keypoint.Raw{}, errors.NewShapeMismatchError("keypoints are empty")
	}

	raw := keypoint.Raw{
		Frames:    len(frames),
		Landmarks: len(frames[0]),
		Dims:      len(frames[0][0]),
	}
	raw.Data = make([]float64, 0, raw.Frames*raw.Landmarks*raw.Dims)

	for f, landmarks := range frames {
		if len(landmarks) != raw.Landmarks {
			return keypoint.Raw{}, errors.NewShapeMismatchError(
				"frame %d has %d landmarks, frame 0 has %d", f, len(landmarks), raw.Landmarks)
		}
		for l, coords := range landmarks {
			if len(coords) != raw.Dims {
				return keypoint.Raw{}, errors.NewShapeMismatchError(
					"frame %d landmark %d has %d dims, expected %d", f, l, len(coords), raw.Dims)
			}
			raw.Data = append(raw.Data, coords...)
		}
	}

	return raw, raw.Validate()
}

func toNested(raw keypoint.Raw) [][][]float64 {
	out := make([][][]float64, raw.Frames)
	for f := range out {
		out[f] = make([][]float64, raw.Landmarks)
		for l := range out[f] {
			start := (f*raw.Landmarks + l) * raw.Dims
			out[f][l] = raw.Data[start : start+raw.Dims]
		}
	}
	return out
}
