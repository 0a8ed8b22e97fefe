// Package skeleton defines the anatomical inward-edge sets that connect
// landmarks inside a single frame.
package skeleton

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/signlab/isrgraph/errors"
)

// Edge is a directed connection between two node indices of the reduced
// node set. From and To are frame-local (0..Nodes-1).
type Edge struct {
	From int
	To   int
}

// Skeleton is a named node count plus its inward edges. Edge order is
// significant: it is the intra-frame edge order of every assembled graph.
type Skeleton struct {
	Name   string
	Nodes  int
	Inward []Edge
}

// Holistic27 is the default 27-node holistic skeleton: face/shoulder/elbow
// chain plus a 10-edge fan for each hand rooted at the wrist.
var Holistic27 = Skeleton{
	Name:  "holistic27",
	Nodes: 27,
	Inward: []Edge{
		{2, 0}, {1, 0}, {0, 3}, {0, 4}, {3, 5}, {4, 6}, {5, 7}, {6, 17},
		{7, 8}, {7, 9}, {9, 10}, {7, 11}, {11, 12}, {7, 13}, {13, 14},
		{7, 15}, {15, 16}, {17, 18}, {17, 19}, {19, 20}, {17, 21}, {21, 22},
		{17, 23}, {23, 24}, {17, 25}, {25, 26},
	},
}

// Validate checks that every edge endpoint lies within [0, Nodes).
func (s Skeleton) Validate() error {
	if s.Nodes < 1 {
		return errors.NewInvalidConfigError("skeleton %q: nodes must be > 0, got %d", s.Name, s.Nodes)
	}
	for i, e := range s.Inward {
		if e.From < 0 || e.From >= s.Nodes || e.To < 0 || e.To >= s.Nodes {
			return errors.NewInvalidConfigError("skeleton %q: edge %d (%d->%d) outside [0,%d)", s.Name, i, e.From, e.To, s.Nodes)
		}
	}
	return nil
}

// EdgeIndex returns the inward edges as a 2×E index (sources, targets),
// the layout graph trainers expect for a shared per-frame edge set.
func (s Skeleton) EdgeIndex() [2][]int {
	var idx [2][]int
	idx[0] = make([]int, len(s.Inward))
	idx[1] = make([]int, len(s.Inward))
	for i, e := range s.Inward {
		idx[0][i] = e.From
		idx[1][i] = e.To
	}
	return idx
}

// file is the on-disk TOML layout:
//
//	name = "holistic27"
//	nodes = 27
//	inward = [[2, 0], [1, 0], ...]
type file struct {
	Name   string   `toml:"name"`
	Nodes  int      `toml:"nodes"`
	Inward [][2]int `toml:"inward"`
}

// LoadFile reads a custom skeleton from a TOML file.
func LoadFile(path string) (Skeleton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Skeleton{}, errors.Wrapf(err, "read skeleton file %s", path)
	}
	return Parse(data)
}

// Parse decodes a TOML skeleton definition and validates it.
func Parse(data []byte) (Skeleton, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return Skeleton{}, errors.Wrap(err, "decode skeleton")
	}

	s := Skeleton{Name: f.Name, Nodes: f.Nodes, Inward: make([]Edge, 0, len(f.Inward))}
	for _, pair := range f.Inward {
		s.Inward = append(s.Inward, Edge{From: pair[0], To: pair[1]})
	}
	if s.Name == "" {
		s.Name = "custom"
	}
	if err := s.Validate(); err != nil {
		return Skeleton{}, err
	}
	return s, nil
}
