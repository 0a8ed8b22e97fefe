package keypoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signlab/isrgraph/errors"
)

// rawFixture builds a (frames, landmarks, dims) tensor where x encodes
// frame*1000+landmark and y is its negation, so every value is traceable.
func rawFixture(frames, landmarks, dims int) Raw {
	r := Raw{Frames: frames, Landmarks: landmarks, Dims: dims, Data: make([]float64, frames*landmarks*dims)}
	for f := 0; f < frames; f++ {
		for l := 0; l < landmarks; l++ {
			base := (f*landmarks + l) * dims
			r.Data[base] = float64(f*1000 + l)
			r.Data[base+1] = -float64(f*1000 + l)
			for d := 2; d < dims; d++ {
				r.Data[base+d] = 0.5
			}
		}
	}
	return r
}

func TestRawValidate(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"no frames", Raw{Frames: 0, Landmarks: 75, Dims: 3}},
		{"one dim", Raw{Frames: 1, Landmarks: 75, Dims: 1, Data: make([]float64, 75)}},
		{"no landmarks", Raw{Frames: 1, Landmarks: 0, Dims: 2}},
		{"short data", Raw{Frames: 2, Landmarks: 3, Dims: 2, Data: make([]float64, 5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.IsShapeMismatchError(tt.raw.Validate()))
		})
	}
	assert.NoError(t, rawFixture(2, 3, 2).Validate())
}

func TestPermute(t *testing.T) {
	raw := rawFixture(2, 3, 4)
	pose, err := Permute(raw)
	require.NoError(t, err)

	assert.Equal(t, 2, pose.Frames)
	assert.Equal(t, 3, pose.Nodes)
	assert.Len(t, pose.Data, 2*2*3)
	for f := 0; f < 2; f++ {
		for l := 0; l < 3; l++ {
			assert.Equal(t, raw.At(f, l, 0), pose.At(0, f, l))
			assert.Equal(t, raw.At(f, l, 1), pose.At(1, f, l))
		}
	}
}

func TestSelectNodes(t *testing.T) {
	pose, err := Permute(rawFixture(1, 5, 2))
	require.NoError(t, err)

	sel, err := SelectNodes(pose, []int{4, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 0, 2}, sel.Row(0, 0))
	assert.Equal(t, []float64{-4, 0, -2}, sel.Row(1, 0))

	_, err = SelectNodes(pose, []int{5})
	assert.True(t, errors.IsShapeMismatchError(err))
}

func TestDownsample(t *testing.T) {
	pose, err := Permute(rawFixture(10, 2, 2))
	require.NoError(t, err)

	down, err := Downsample(pose, 3)
	require.NoError(t, err)
	require.Equal(t, 4, down.Frames)

	var kept []int
	for f := 0; f < down.Frames; f++ {
		kept = append(kept, int(down.At(0, f, 0))/1000)
	}
	assert.Equal(t, []int{0, 3, 6, 9}, kept)

	same, err := Downsample(pose, 1)
	require.NoError(t, err)
	assert.Equal(t, pose.Data, same.Data)

	_, err = Downsample(pose, 0)
	assert.True(t, errors.IsInvalidConfigError(err))
}

func TestDownsample_FrameCounts(t *testing.T) {
	for frames, want := range map[int]int{1: 1, 2: 1, 3: 1, 4: 2, 9: 3, 10: 4} {
		pose := NewPose(frames, 1)
		down, err := Downsample(pose, 3)
		require.NoError(t, err)
		assert.Equal(t, want, down.Frames, "frames=%d", frames)
	}
}

func TestPreprocessor_Process(t *testing.T) {
	p, err := NewPreprocessor(Options{})
	require.NoError(t, err)
	assert.Equal(t, 27, p.Nodes())

	raw := rawFixture(4, HolisticLandmarks, 3)
	pose, err := p.Process(raw)
	require.NoError(t, err)

	assert.Equal(t, 4, pose.Frames)
	assert.Equal(t, 27, pose.Nodes)
	for i, idx := range Holistic27 {
		assert.Equal(t, float64(3000+idx), pose.At(0, 3, i))
		assert.Equal(t, -float64(3000+idx), pose.At(1, 3, i))
	}
}

func TestPreprocessor_Downsample(t *testing.T) {
	p, err := NewPreprocessor(Options{Downsample: true})
	require.NoError(t, err)

	pose, err := p.Process(rawFixture(10, HolisticLandmarks, 2))
	require.NoError(t, err)
	assert.Equal(t, 4, pose.Frames)
	assert.Equal(t, float64(9000), pose.At(0, 3, 0))
}

func TestPreprocessor_WrongLandmarkCount(t *testing.T) {
	p, err := NewPreprocessor(Options{})
	require.NoError(t, err)

	_, err = p.Process(rawFixture(2, 33, 2))
	require.Error(t, err)
	assert.True(t, errors.IsShapeMismatchError(err))
	assert.Contains(t, err.Error(), "expected 75 landmarks")
}

func TestNewPreprocessor_InvalidOptions(t *testing.T) {
	_, err := NewPreprocessor(Options{DownsampleRate: -2})
	assert.True(t, errors.IsInvalidConfigError(err))

	_, err = NewPreprocessor(Options{Landmarks: 10, Selection: []int{0, 10}})
	assert.True(t, errors.IsInvalidConfigError(err))
}

func TestPreprocessor_AppliesNormalizer(t *testing.T) {
	calls := 0
	norm := NormalizerFunc(func(p Pose) Pose {
		calls++
		out := p.Clone()
		for i := range out.Data {
			out.Data[i] = 1
		}
		return out
	})
	p, err := NewPreprocessor(Options{Normalizer: norm})
	require.NoError(t, err)

	pose, err := p.Process(rawFixture(2, HolisticLandmarks, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2*2*27, len(pose.Data))
	assert.Equal(t, 1.0, pose.At(1, 1, 26))
}

func TestCenterAndScale(t *testing.T) {
	pose := NewPose(2, 27)
	// frame 0: shoulders at (1,1) and (3,1), distance 2
	pose.Set(0, 0, LeftShoulderNode, 1)
	pose.Set(1, 0, LeftShoulderNode, 1)
	pose.Set(0, 0, RightShoulderNode, 3)
	pose.Set(1, 0, RightShoulderNode, 1)
	pose.Set(0, 0, 0, 2)
	pose.Set(1, 0, 0, 3)
	// frame 1: coincident shoulders at (5,5): centered only
	pose.Set(0, 1, LeftShoulderNode, 5)
	pose.Set(1, 1, LeftShoulderNode, 5)
	pose.Set(0, 1, RightShoulderNode, 5)
	pose.Set(1, 1, RightShoulderNode, 5)
	pose.Set(0, 1, 0, 6)
	pose.Set(1, 1, 0, 7)

	out := NewCenterAndScale().Normalize(pose)

	assert.InDelta(t, -0.5, out.At(0, 0, LeftShoulderNode), 1e-12)
	assert.InDelta(t, 0.5, out.At(0, 0, RightShoulderNode), 1e-12)
	assert.InDelta(t, 0.0, out.At(0, 0, 0), 1e-12)
	assert.InDelta(t, 1.0, out.At(1, 0, 0), 1e-12)

	assert.InDelta(t, 1.0, out.At(0, 1, 0), 1e-12)
	assert.InDelta(t, 2.0, out.At(1, 1, 0), 1e-12)

	// input untouched
	assert.Equal(t, 2.0, pose.At(0, 0, 0))
	assert.False(t, math.IsNaN(out.At(0, 1, LeftShoulderNode)))
}
