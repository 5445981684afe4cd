package main

import (
	"fmt"
	"slices"
	"strings"

	"hitstats/stats"
)

// Modifiers is the part of a mod combination that changes how a score's
// statistics are counted. Everything else is kept only for display.
type Modifiers struct {
	Classic bool

	Acronyms []string
}

// ParseMods reads acronyms either packed ("HDDTCL") or separated by commas,
// spaces or plus signs ("HD,DT", "+HD +CL").
func ParseMods(s string) (Modifiers, error) {
	var mods Modifiers
	fields := strings.FieldsFunc(strings.ToUpper(s), func(r rune) bool {
		return r == ',' || r == '+' || r == ' '
	})
	for _, field := range fields {
		if len(field)%2 != 0 {
			return Modifiers{}, fmt.Errorf("invalid mods %q: acronyms are two letters", s)
		}
		for i := 0; i < len(field); i += 2 {
			acronym := field[i : i+2]
			if !slices.Contains(mods.Acronyms, acronym) {
				mods.Acronyms = append(mods.Acronyms, acronym)
			}
		}
	}
	mods.Classic = slices.Contains(mods.Acronyms, "CL")
	return mods, nil
}

func (m Modifiers) ScoringMode() stats.ScoringMode {
	if m.Classic {
		return stats.Classic
	}
	return stats.Standard
}
