package dataset

import (
	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/store"
)

// Vocabulary maps glosses to integer labels in first-seen order.
type Vocabulary struct {
	glosses []string
	labels  map[string]int
}

// NewVocabulary assigns labels 0..K-1 to the distinct glosses of md in the
// order they first appear.
func NewVocabulary(md store.Metadata) *Vocabulary {
	v := &Vocabulary{labels: make(map[string]int)}
	for _, entry := range md {
		v.add(entry.Gloss)
	}
	return v
}

func (v *Vocabulary) add(gloss string) int {
	if label, ok := v.labels[gloss]; ok {
		return label
	}
	label := len(v.glosses)
	v.glosses = append(v.glosses, gloss)
	v.labels[gloss] = label
	return label
}

// Len is the number of distinct glosses.
func (v *Vocabulary) Len() int { return len(v.glosses) }

// Label returns the label of gloss.
func (v *Vocabulary) Label(gloss string) (int, error) {
	label, ok := v.labels[gloss]
	if !ok {
		return 0, errors.NewNotFoundError("gloss %q", gloss)
	}
	return label, nil
}

// Gloss returns the gloss with the given label.
func (v *Vocabulary) Gloss(label int) (string, error) {
	if label < 0 || label >= len(v.glosses) {
		return "", errors.NewNotFoundError("label %d (vocabulary has %d glosses)", label, len(v.glosses))
	}
	return v.glosses[label], nil
}

// Glosses returns the glosses in label order.
func (v *Vocabulary) Glosses() []string {
	out := make([]string, len(v.glosses))
	copy(out, v.glosses)
	return out
}
