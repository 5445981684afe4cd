package stats

// Summary counts the judged objects of a beatmap for one ruleset.
//
// TotalBaseObjects is every object that receives a primary judgement:
// circles, sliders and spinners in osu, hits in taiko, fruits (including
// juice stream heads, repeats and tails) in catch, notes and hold notes in
// mania. Sliders is the number of slider tails, LargeTicks the slider ticks
// and repeats (osu) or droplets (catch), SmallTicks the tiny droplets (catch)
// and HoldNotes the mania hold notes.
type Summary struct {
	TotalBaseObjects int `json:"total_base_objects" yaml:"total_base_objects"`
	Sliders          int `json:"sliders" yaml:"sliders"`
	Spinners         int `json:"spinners" yaml:"spinners"`
	LargeTicks       int `json:"large_ticks" yaml:"large_ticks"`
	SmallTicks       int `json:"small_ticks" yaml:"small_ticks"`
	HoldNotes        int `json:"hold_notes" yaml:"hold_notes"`
}

func (s Summary) normalized() Summary {
	s.TotalBaseObjects = max(0, s.TotalBaseObjects)
	s.Sliders = max(0, s.Sliders)
	s.Spinners = max(0, s.Spinners)
	s.LargeTicks = max(0, s.LargeTicks)
	s.SmallTicks = max(0, s.SmallTicks)
	s.HoldNotes = max(0, s.HoldNotes)
	return s
}
