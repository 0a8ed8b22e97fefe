package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/signlab/isrgraph/errors"
)

// Instance is one recording of a gloss.
type Instance struct {
	VideoID string `json:"video_id" yaml:"video_id"`
	Split   string `json:"split" yaml:"split"`
	View    int    `json:"camera_view" yaml:"camera_view"`
}

// GlossEntry lists the recordings of one gloss.
type GlossEntry struct {
	Gloss     string     `json:"gloss" yaml:"gloss"`
	Instances []Instance `json:"instances" yaml:"instances"`
}

// Metadata is the annotation file content in file order.
type Metadata []GlossEntry

// Merged combines entries sharing a gloss, keeping first-seen gloss order
// and instance order within each gloss.
func (m Metadata) Merged() Metadata {
	index := make(map[string]int, len(m))
	var out Metadata
	for _, entry := range m {
		i, ok := index[entry.Gloss]
		if !ok {
			index[entry.Gloss] = len(out)
			out = append(out, GlossEntry{Gloss: entry.Gloss})
			i = len(out) - 1
		}
		out[i].Instances = append(out[i].Instances, entry.Instances...)
	}
	return out
}

// Metadata formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// LoadMetadata reads a JSON or YAML annotation file, chosen by extension.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("metadata file %s", path)
		}
		return nil, errors.Wrapf(err, "read metadata %s", path)
	}

	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}

	md, err := ParseMetadata(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "metadata %s", path)
	}
	return md, nil
}

// ParseMetadata decodes annotation content in the given format.
func ParseMetadata(data []byte, format string) (Metadata, error) {
	var md Metadata
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &md); err != nil {
			return nil, errors.Wrap(err, "decode JSON metadata")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &md); err != nil {
			return nil, errors.Wrap(err, "decode YAML metadata")
		}
	default:
		return nil, errors.NewInvalidRequestError("unknown metadata format %q", format)
	}

	for i, entry := range md {
		if entry.Gloss == "" {
			return nil, errors.NewInvalidRequestError("metadata entry %d has no gloss", i)
		}
		for j, inst := range entry.Instances {
			if inst.VideoID == "" {
				return nil, errors.NewInvalidRequestError("gloss %s instance %d has no video_id", entry.Gloss, j)
			}
		}
	}
	return md, nil
}
