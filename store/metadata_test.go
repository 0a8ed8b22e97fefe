package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signlab/isrgraph/errors"
)

const jsonMetadata = `[
  {"gloss": "HUIS", "instances": [
    {"video_id": "v1", "split": "train", "camera_view": 0},
    {"video_id": "v2", "split": "test", "camera_view": 2}
  ]},
  {"gloss": "BOOM", "instances": [{"video_id": "v3", "split": "val", "camera_view": 1}]},
  {"gloss": "HUIS", "instances": [{"video_id": "v4", "split": "train", "camera_view": 1}]}
]`

const yamlMetadata = `
- gloss: HUIS
  instances:
    - {video_id: v1, split: train, camera_view: 0}
    - {video_id: v2, split: test, camera_view: 2}
- gloss: BOOM
  instances:
    - video_id: v3
      split: val
      camera_view: 1
`

func TestParseMetadata_JSONAndYAMLAgree(t *testing.T) {
	fromJSON, err := ParseMetadata([]byte(jsonMetadata), FormatJSON)
	require.NoError(t, err)
	fromYAML, err := ParseMetadata([]byte(yamlMetadata), FormatYAML)
	require.NoError(t, err)

	require.Len(t, fromJSON, 3)
	assert.Equal(t, fromJSON[:2], fromYAML)
	assert.Equal(t, Instance{VideoID: "v2", Split: "test", View: 2}, fromJSON[0].Instances[1])
}

func TestMetadata_Merged(t *testing.T) {
	md, err := ParseMetadata([]byte(jsonMetadata), FormatJSON)
	require.NoError(t, err)

	merged := md.Merged()
	require.Len(t, merged, 2)
	assert.Equal(t, "HUIS", merged[0].Gloss)
	assert.Equal(t, "BOOM", merged[1].Gloss)

	var ids []string
	for _, inst := range merged[0].Instances {
		ids = append(ids, inst.VideoID)
	}
	assert.Equal(t, []string{"v1", "v2", "v4"}, ids)
	// input untouched
	assert.Len(t, md[0].Instances, 2)
}

func TestParseMetadata_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"bad json", "[{", FormatJSON},
		{"bad yaml", "- gloss: [", FormatYAML},
		{"missing gloss", `[{"instances": []}]`, FormatJSON},
		{"missing video id", `[{"gloss": "A", "instances": [{"split": "train"}]}]`, FormatJSON},
		{"unknown format", "[]", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetadata([]byte(tt.data), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestLoadMetadata_ByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "meta.json")
	yamlPath := filepath.Join(dir, "meta.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonMetadata), 0644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlMetadata), 0644))

	md, err := LoadMetadata(jsonPath)
	require.NoError(t, err)
	assert.Len(t, md, 3)

	md, err = LoadMetadata(yamlPath)
	require.NoError(t, err)
	assert.Len(t, md, 2)

	_, err = LoadMetadata(filepath.Join(dir, "absent.json"))
	assert.True(t, errors.IsNotFoundError(err))
}
