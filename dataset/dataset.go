// Package dataset turns annotation metadata and raw keypoints into the
// per-video spatio-temporal graph records of a sign vocabulary.
package dataset

import (
	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/graph"
)

// Skip reasons recorded in Dataset.Skipped.
const (
	ReasonMissing   = "missing keypoints"
	ReasonDuplicate = "duplicate video id"
)

// Skipped is a metadata instance that produced no record.
type Skipped struct {
	VideoID string
	Reason  string
}

// Dataset owns the records of one build and the template they were sliced from.
type Dataset struct {
	Template   *graph.Template
	Vocabulary *Vocabulary
	// Records are in metadata order: glosses in first-seen order, instances
	// in file order within a gloss.
	Records []*graph.Record
	Skipped []Skipped

	byID map[string]*graph.Record
}

func newDataset(t *graph.Template, vocab *Vocabulary, records []*graph.Record, skipped []Skipped) *Dataset {
	d := &Dataset{
		Template:   t,
		Vocabulary: vocab,
		Records:    records,
		Skipped:    skipped,
		byID:       make(map[string]*graph.Record, len(records)),
	}
	for _, r := range records {
		d.byID[r.VideoID] = r
	}
	return d
}

// Len is the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// MaxFrames is F_max, the longest reduced sequence in the dataset.
func (d *Dataset) MaxFrames() int { return d.Template.MaxFrames() }

// Record returns the record of a video.
func (d *Dataset) Record(videoID string) (*graph.Record, error) {
	r, ok := d.byID[videoID]
	if !ok {
		return nil, errors.NewNotFoundError("video %s", videoID)
	}
	return r, nil
}
