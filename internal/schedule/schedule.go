package schedule

import "math/rand"

// Segment assigns a template and parameter curves to the level range
// [From, To), or to the single level From when From == To.
type Segment struct {
	From, To int
	Template string
	Curves   map[string]Curve
	Strings  map[string]string
}

// contains reports whether level falls inside the segment's range.
func (s Segment) contains(level int) bool {
	if s.From == s.To {
		return level == s.From
	}
	return level >= s.From && level < s.To
}

// progress returns the normalized position of level within the segment,
// clamped to [0, 1].
func (s Segment) progress(level int) float64 {
	if s.To <= s.From {
		return 0
	}
	t := float64(level-s.From) / float64(s.To-s.From)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Schedule is an ordered segment list. Well-formed data has no overlaps;
// when present anyway, the first matching segment wins.
type Schedule struct {
	Segments []Segment
}

// SegmentAt returns the segment containing level and the progress fraction
// within it. A level beyond every range resolves to the last segment at
// progress 1, keeping the progression open-ended.
func (s *Schedule) SegmentAt(level int) (Segment, float64) {
	for _, seg := range s.Segments {
		if seg.contains(level) {
			return seg, seg.progress(level)
		}
	}
	last := s.Segments[len(s.Segments)-1]
	return last, last.progress(level)
}

// ParamsAt resolves the template name and evaluated parameter table for the
// given level. Curves evaluate to float64; string parameters pass through.
func (s *Schedule) ParamsAt(level int) (string, map[string]any) {
	seg, t := s.SegmentAt(level)
	params := make(map[string]any, len(seg.Curves)+len(seg.Strings))
	for name, curve := range seg.Curves {
		params[name] = curve.Eval(t)
	}
	for name, v := range seg.Strings {
		params[name] = v
	}
	return seg.Template, params
}

// Creature is one entry of a creature-type table.
type Creature struct {
	Key  string
	Name string
}

// PickSpawns selects the creatures to spawn for one level. The count is
// derived from the enemy-density parameter — density*5 rounded, jittered by
// -1..+2, floored at zero — and each pick is an independent uniform draw
// from the table.
func PickSpawns(density float64, rng *rand.Rand, table []Creature) []Creature {
	if len(table) == 0 {
		return nil
	}
	count := int(density*5+0.5) + rng.Intn(4) - 1
	if count <= 0 {
		return nil
	}
	picks := make([]Creature, 0, count)
	for i := 0; i < count; i++ {
		picks = append(picks, table[rng.Intn(len(table))])
	}
	return picks
}
