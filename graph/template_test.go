package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/keypoint"
	"github.com/signlab/isrgraph/skeleton"
)

var tiny = skeleton.Skeleton{Name: "tiny", Nodes: 3, Inward: []skeleton.Edge{{From: 1, To: 0}, {From: 2, To: 1}}}

func TestNewTemplate_Counts(t *testing.T) {
	tmpl, err := NewTemplate(4, tiny)
	require.NoError(t, err)

	assert.Equal(t, 4, tmpl.MaxFrames())
	assert.Equal(t, 3, tmpl.Nodes())
	assert.Equal(t, 2, tmpl.EdgesPerFrame())
	assert.Len(t, tmpl.spatial, 8)
	assert.Len(t, tmpl.temporal, 9)

	rows, cols := tmpl.roles.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 12, cols)
}

func TestNewTemplate_EdgeOrdering(t *testing.T) {
	tmpl, err := NewTemplate(3, tiny)
	require.NoError(t, err)

	assert.Equal(t, []Edge{
		{1, 0}, {2, 1},
		{4, 3}, {5, 4},
		{7, 6}, {8, 7},
	}, tmpl.spatial)
	assert.Equal(t, []Edge{
		{0, 3}, {1, 4}, {2, 5},
		{3, 6}, {4, 7}, {5, 8},
	}, tmpl.temporal)
}

func TestNewTemplate_SingleFrame(t *testing.T) {
	tmpl, err := NewTemplate(1, tiny)
	require.NoError(t, err)

	temporal, err := tmpl.TemporalEdges(1)
	require.NoError(t, err)
	assert.Empty(t, temporal)
	assert.Equal(t, 0, tmpl.TemporalEdgeCount(1))
}

func TestNewTemplate_Invalid(t *testing.T) {
	_, err := NewTemplate(0, tiny)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	bad := skeleton.Skeleton{Nodes: 2, Inward: []skeleton.Edge{{From: 0, To: 2}}}
	_, err = NewTemplate(3, bad)
	assert.True(t, errors.IsInvalidConfigError(err))
}

func TestTemplate_TruncationEquivalence(t *testing.T) {
	global, err := NewTemplate(12, skeleton.Holistic27)
	require.NoError(t, err)

	for f := 1; f <= 12; f++ {
		direct, err := NewTemplate(f, skeleton.Holistic27)
		require.NoError(t, err)

		spatial, err := global.SpatialEdges(f)
		require.NoError(t, err)
		temporal, err := global.TemporalEdges(f)
		require.NoError(t, err)
		roles, err := global.RoleFeatures(f)
		require.NoError(t, err)

		wantSpatial, _ := direct.SpatialEdges(f)
		wantTemporal, _ := direct.TemporalEdges(f)
		wantRoles, _ := direct.RoleFeatures(f)

		assert.Equal(t, wantSpatial, spatial, "spatial f=%d", f)
		assert.Equal(t, wantTemporal, temporal, "temporal f=%d", f)
		assert.Equal(t, wantRoles.RawMatrix().Data, roles.RawMatrix().Data, "roles f=%d", f)
	}
}

func TestTemplate_RoleFeaturesFrameInvariant(t *testing.T) {
	tmpl, err := NewTemplate(5, tiny)
	require.NoError(t, err)

	roles, err := tmpl.RoleFeatures(5)
	require.NoError(t, err)
	rows, cols := roles.Dims()
	require.Equal(t, 15, rows)
	require.Equal(t, 3, cols)

	for f := 0; f < 5; f++ {
		for n := 0; n < 3; n++ {
			for k := 0; k < 3; k++ {
				want := 0.0
				if k == n {
					want = 1
				}
				assert.Equal(t, want, roles.At(f*3+n, k), "frame %d node %d col %d", f, n, k)
			}
		}
	}
}

func TestTemplate_RoleFeaturesAreCopies(t *testing.T) {
	tmpl, err := NewTemplate(2, tiny)
	require.NoError(t, err)

	a, err := tmpl.RoleFeatures(2)
	require.NoError(t, err)
	a.Set(0, 0, 42)

	b, err := tmpl.RoleFeatures(2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.At(0, 0))
}

func TestTemplate_SlicesDoNotLeakAppends(t *testing.T) {
	tmpl, err := NewTemplate(3, tiny)
	require.NoError(t, err)

	spatial, err := tmpl.SpatialEdges(1)
	require.NoError(t, err)
	_ = append(spatial, Edge{99, 99})

	full, err := tmpl.SpatialEdges(3)
	require.NoError(t, err)
	assert.Equal(t, Edge{4, 3}, full[2])
}

func TestTemplate_FrameRange(t *testing.T) {
	tmpl, err := NewTemplate(3, tiny)
	require.NoError(t, err)

	_, err = tmpl.SpatialEdges(0)
	assert.Error(t, err)
	_, err = tmpl.TemporalEdges(4)
	assert.Error(t, err)
	_, err = tmpl.RoleFeatures(4)
	assert.Error(t, err)
}

func TestTemplate_PerFrameEdges(t *testing.T) {
	tmpl, err := NewTemplate(3, tiny)
	require.NoError(t, err)
	assert.Equal(t, []Edge{{1, 0}, {2, 1}}, tmpl.PerFrameEdges())
}

func TestMaxFrameCount(t *testing.T) {
	assert.Equal(t, 0, MaxFrameCount(nil))
	poses := []keypoint.Pose{keypoint.NewPose(2, 3), keypoint.NewPose(7, 3), keypoint.NewPose(4, 3)}
	assert.Equal(t, 7, MaxFrameCount(poses))
}
