package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/signlab/isrgraph/graph"
	"github.com/signlab/isrgraph/logger"
)

// InspectCmd shows the assembled graph of one video
var InspectCmd = &cobra.Command{
	Use:   "inspect <video_id>",
	Short: "Show the assembled graph of one video",
	Long: `Build the dataset and print the shapes and edge counts of one video's graph.

The whole dataset is read because the edge and feature template depends on
the longest video.

Examples:
  isrgraph inspect 12345
  isrgraph inspect 12345 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	InspectCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

// recordSummary is the printable shape of one Record.
type recordSummary struct {
	VideoID          string `json:"video_id"`
	Gloss            string `json:"gloss"`
	Label            int    `json:"label"`
	Split            string `json:"split"`
	View             int    `json:"view"`
	Frames           int    `json:"frames"`
	SourceFrames     int    `json:"source_frames"`
	Nodes            int    `json:"nodes"`
	NodesPerFrame    int    `json:"nodes_per_frame"`
	SpatialEdges     int    `json:"spatial_edges"`
	TemporalEdges    int    `json:"temporal_edges"`
	FeatureShape     [2]int `json:"feature_shape"`
	PositionShape    [2]int `json:"position_shape"`
	TemplateFrames   int    `json:"template_frames"`
	TemplateSpatial  int    `json:"template_spatial_edges"`
	TemplateTemporal int    `json:"template_temporal_edges"`
}

func summarize(r *graph.Record, t *graph.Template) recordSummary {
	s := recordSummary{
		VideoID:          r.VideoID,
		Gloss:            r.Gloss,
		Label:            r.Label,
		Split:            r.Split,
		View:             r.View,
		Frames:           r.FrameCount,
		SourceFrames:     r.SourceFrameCount,
		Nodes:            r.NumNodes(),
		NodesPerFrame:    r.Nodes(),
		SpatialEdges:     len(r.SpatialEdges),
		TemporalEdges:    len(r.TemporalEdges),
		TemplateFrames:   t.MaxFrames(),
		TemplateSpatial:  t.SpatialEdgeCount(t.MaxFrames()),
		TemplateTemporal: t.TemporalEdgeCount(t.MaxFrames()),
	}
	s.FeatureShape[0], s.FeatureShape[1] = r.Features.Dims()
	s.PositionShape[0], s.PositionShape[1] = r.Positions.Dims()
	return s
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	p, err := runPipeline(cmd.Context(), cfg, logger.Logger)
	if err != nil {
		return err
	}

	rec, err := p.Dataset.Record(args[0])
	if err != nil {
		return err
	}
	s := summarize(rec, p.Dataset.Template)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	pterm.DefaultSection.Printf("Video %s", s.VideoID)
	_ = pterm.DefaultTable.WithData(pterm.TableData{
		{"Gloss", fmt.Sprintf("%s (label %d)", s.Gloss, s.Label)},
		{"Split / view", fmt.Sprintf("%s / %d", s.Split, s.View)},
		{"Frames", fmt.Sprintf("%d of %d", s.Frames, s.SourceFrames)},
		{"Nodes", fmt.Sprintf("%d (%d per frame)", s.Nodes, s.NodesPerFrame)},
		{"Spatial edges", fmt.Sprintf("%d", s.SpatialEdges)},
		{"Temporal edges", fmt.Sprintf("%d", s.TemporalEdges)},
		{"Features", fmt.Sprintf("%d x %d", s.FeatureShape[0], s.FeatureShape[1])},
		{"Positions", fmt.Sprintf("%d x %d", s.PositionShape[0], s.PositionShape[1])},
		{"Template", fmt.Sprintf("%d frames, %d spatial, %d temporal edges", s.TemplateFrames, s.TemplateSpatial, s.TemplateTemporal)},
	}).Render()
	return nil
}
