package graph

import (
	"github.com/signlab/isrgraph/errors"
	"github.com/signlab/isrgraph/keypoint"
)

// Input is everything Assemble needs about one video.
type Input struct {
	VideoID string
	Label   int
	Gloss   string
	Split   string
	View    int
	Pose    keypoint.Pose
}

// Assemble slices the template down to the video's frame count and builds
// its Record.
//
// The frame count used is min(Pose.Frames, maxFramesCap); maxFramesCap <= 0
// disables the cap. Videos longer than the cap lose their trailing frames
// entirely: edges, features and positions all stop at the cap, and the
// original length is kept in SourceFrameCount.
func Assemble(t *Template, in Input, maxFramesCap int) (*Record, error) {
	if in.Pose.Nodes != t.Nodes() {
		return nil, errors.NewShapeMismatchError("video %s has %d nodes per frame, template has %d",
			in.VideoID, in.Pose.Nodes, t.Nodes())
	}
	if in.Pose.Frames < 1 {
		return nil, errors.NewShapeMismatchError("video %s has no frames", in.VideoID)
	}

	frames := in.Pose.Frames
	if maxFramesCap > 0 && frames > maxFramesCap {
		frames = maxFramesCap
	}

	spatial, err := t.SpatialEdges(frames)
	if err != nil {
		return nil, errors.Wrapf(err, "video %s", in.VideoID)
	}
	temporal, err := t.TemporalEdges(frames)
	if err != nil {
		return nil, errors.Wrapf(err, "video %s", in.VideoID)
	}
	features, err := t.RoleFeatures(frames)
	if err != nil {
		return nil, errors.Wrapf(err, "video %s", in.VideoID)
	}
	positions, err := Flatten(in.Pose, frames)
	if err != nil {
		return nil, errors.Wrapf(err, "video %s", in.VideoID)
	}

	return &Record{
		VideoID:          in.VideoID,
		Label:            in.Label,
		Gloss:            in.Gloss,
		Split:            in.Split,
		View:             in.View,
		FrameCount:       frames,
		SourceFrameCount: in.Pose.Frames,
		Features:         features,
		Positions:        positions,
		SpatialEdges:     spatial,
		TemporalEdges:    temporal,
	}, nil
}
