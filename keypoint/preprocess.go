package keypoint

import (
	"github.com/signlab/isrgraph/errors"
)

// HolisticLandmarks is the landmark count of a holistic track:
// 33 body landmarks followed by 21 per hand.
const HolisticLandmarks = 75

// DefaultDownsampleRate is the frame stride used when downsampling is on.
const DefaultDownsampleRate = 3

// Holistic27 lists the holistic landmark indices kept for the 27-node
// graph. Order defines node identity: Holistic27[i] becomes node i.
var Holistic27 = []int{
	0, 2, 5, 11, 12, 13, 14, // nose, eyes, shoulders, elbows
	33, 37, 38, 41, 42, 45, 46, 49, 50, 53, // left hand: wrist + finger joints
	54, 58, 59, 62, 63, 66, 67, 70, 71, 74, // right hand: wrist + finger joints
}

// Options configures a Preprocessor.
type Options struct {
	// Landmarks is the landmark count every raw tensor must have.
	// Zero means HolisticLandmarks.
	Landmarks int
	// Selection is the node subset to keep. Nil means Holistic27.
	Selection []int
	// Downsample enables frame striding with DownsampleRate.
	Downsample     bool
	DownsampleRate int
	// Normalizer, when non-nil, runs last on the reduced pose.
	Normalizer Normalizer
}

// Preprocessor reduces raw keypoints to the fixed node subset.
// It is stateless after construction and safe for concurrent use
// provided the Normalizer is.
type Preprocessor struct {
	landmarks  int
	selection  []int
	downsample bool
	rate       int
	normalizer Normalizer
}

// NewPreprocessor validates opts and returns a Preprocessor.
func NewPreprocessor(opts Options) (*Preprocessor, error) {
	p := &Preprocessor{
		landmarks:  opts.Landmarks,
		selection:  opts.Selection,
		downsample: opts.Downsample,
		rate:       opts.DownsampleRate,
		normalizer: opts.Normalizer,
	}
	if p.landmarks == 0 {
		p.landmarks = HolisticLandmarks
	}
	if p.selection == nil {
		p.selection = Holistic27
	}
	if p.rate == 0 {
		p.rate = DefaultDownsampleRate
	}
	if p.rate < 1 {
		return nil, errors.NewInvalidConfigError("downsample rate must be >= 1, got %d", p.rate)
	}
	for _, idx := range p.selection {
		if idx < 0 || idx >= p.landmarks {
			return nil, errors.NewInvalidConfigError("selected landmark %d outside [0,%d)", idx, p.landmarks)
		}
	}
	return p, nil
}

// Nodes returns the reduced node count N.
func (p *Preprocessor) Nodes() int {
	return len(p.selection)
}

// Process runs the fixed pipeline: permute axes, select nodes, optionally
// downsample, optionally normalize.
func (p *Preprocessor) Process(raw Raw) (Pose, error) {
	if raw.Landmarks != p.landmarks {
		return Pose{}, errors.NewShapeMismatchError("expected %d landmarks per frame, got %d", p.landmarks, raw.Landmarks)
	}

	full, err := Permute(raw)
	if err != nil {
		return Pose{}, err
	}

	pose, err := SelectNodes(full, p.selection)
	if err != nil {
		return Pose{}, err
	}

	if p.downsample {
		pose, err = Downsample(pose, p.rate)
		if err != nil {
			return Pose{}, err
		}
	}

	if p.normalizer != nil {
		pose = p.normalizer.Normalize(pose)
	}

	return pose, nil
}
