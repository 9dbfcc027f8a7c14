package schedule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// curveSpec decodes one parameter value from a schedule file. A bare number
// becomes a Constant, a bare string becomes a string parameter, and a
// mapping selects a curve variant by its "type" key:
//
//	enemy_density: {type: linear, start: 0.3, end: 0.7}
//	wall_probability: 0.45
//	biome_tag: lush
type curveSpec struct {
	curve Curve
	str   string
	isStr bool
}

// UnmarshalYAML implements the tagged-union decoding described above.
func (c *curveSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var f float64
		if err := node.Decode(&f); err == nil {
			c.curve = Constant(f)
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		c.str = s
		c.isStr = true
		return nil
	}

	var spec struct {
		Type      string  `yaml:"type"`
		Value     float64 `yaml:"value"`
		Start     float64 `yaml:"start"`
		End       float64 `yaml:"end"`
		Base      float64 `yaml:"base"`
		Amplitude float64 `yaml:"amplitude"`
		Frequency float64 `yaml:"frequency"`
	}
	if err := node.Decode(&spec); err != nil {
		return err
	}
	switch spec.Type {
	case "constant":
		c.curve = Constant(spec.Value)
	case "linear":
		c.curve = Linear{Start: spec.Start, End: spec.End}
	case "noise":
		c.curve = Noise{Base: spec.Base, Amplitude: spec.Amplitude, Frequency: spec.Frequency}
	default:
		return fmt.Errorf("unknown curve type %q", spec.Type)
	}
	return nil
}

type fileSegment struct {
	From     int                  `yaml:"from"`
	To       int                  `yaml:"to"`
	Template string               `yaml:"template"`
	Params   map[string]curveSpec `yaml:"params"`
}

type fileSchedule struct {
	Segments []fileSegment `yaml:"segments"`
}

// Parse decodes a YAML schedule document.
func Parse(data []byte) (*Schedule, error) {
	var file fileSchedule
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Segments) == 0 {
		return nil, fmt.Errorf("schedule has no segments")
	}

	sched := &Schedule{Segments: make([]Segment, 0, len(file.Segments))}
	for i, fs := range file.Segments {
		if fs.To < fs.From {
			return nil, fmt.Errorf("segment %d: to (%d) precedes from (%d)", i, fs.To, fs.From)
		}
		seg := Segment{
			From:     fs.From,
			To:       fs.To,
			Template: fs.Template,
			Curves:   map[string]Curve{},
			Strings:  map[string]string{},
		}
		for name, spec := range fs.Params {
			if spec.isStr {
				seg.Strings[name] = spec.str
			} else {
				seg.Curves[name] = spec.curve
			}
		}
		sched.Segments = append(sched.Segments, seg)
	}
	return sched, nil
}

// LoadFile reads a YAML schedule from path. A missing or malformed file is
// not fatal: the fallback schedule is returned along with the error so the
// caller can log it and keep the game playable.
func LoadFile(path string, fallback *Schedule) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback, err
	}
	sched, err := Parse(data)
	if err != nil {
		return fallback, err
	}
	return sched, nil
}
