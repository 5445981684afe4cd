package dotosu

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	EARLY_VERSION_TIMING_OFFSET = 24
	MAX_MANIA_KEY_COUNT         = 18
)

var ErrInvalidHeader = errors.New("invalid .osu header")

type section int

const (
	secNone section = iota
	secGeneral
	secMetadata
	secDifficulty
	secTimingPoints
	secHitObjects
)

// Beatmap holds the parts of a .osu file that decide which objects get
// judged. Storyboard, editor and hitsound data are skipped.
type Beatmap struct {
	FormatVersion int
	Checksum      string // md5 of the file, hex
	General       General
	Metadata      Metadata
	Difficulty    Difficulty

	TimingPoints []TimingPoint
	HitObjects   []HitObject
}

type General struct {
	Mode int
}

type Metadata struct {
	Title, Artist, Creator, Version string
	BeatmapID, BeatmapSetID         int
}

type Difficulty struct {
	CircleSize, OverallDifficulty    float64
	SliderMultiplier, SliderTickRate float64
}

type TimingPoint struct {
	Time                     int
	BeatLength               float64
	TimingChange             bool
	SliderVelocityMultiplier float64
}

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
	KindHold
)

type HitObjectTypeFlags int

const (
	TypeCircle   HitObjectTypeFlags = 1 << iota // 1
	TypeSlider                                  // 2
	TypeNewCombo                                // 4
	TypeSpinner                                 // 8
	TypeHold     HitObjectTypeFlags = 1 << 7    // 128
)

type HitObject interface {
	Kind() ObjectKind
	StartTime() int
}

type BaseHO struct {
	Time int
	Type HitObjectTypeFlags
}

func (b BaseHO) StartTime() int { return b.Time }

type Circle struct{ BaseHO }

func (Circle) Kind() ObjectKind { return KindCircle }

type Slider struct {
	BaseHO
	Slides int
	Length float64
}

func (Slider) Kind() ObjectKind { return KindSlider }

type Spinner struct {
	BaseHO
	EndTime int
}

func (Spinner) Kind() ObjectKind { return KindSpinner }

type Hold struct {
	BaseHO
	EndTime int
}

func (Hold) Kind() ObjectKind { return KindHold }

func DecodeFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Beatmap, error) {
	sum := md5.New()
	sc := bufio.NewScanner(io.TeeReader(r, sum))
	const maxLine = 1024 * 1024
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var header string
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		header = line
		break
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.ToLower(header), "osu file format v") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, header)
	}
	formatVersion, err := strconv.Atoi(strings.TrimSpace(header[len("osu file format v"):]))
	if err != nil {
		return nil, fmt.Errorf("%w: version in %q: %w", ErrInvalidHeader, header, err)
	}

	b := &Beatmap{
		FormatVersion: formatVersion,
		Difficulty: Difficulty{
			CircleSize:        5,
			OverallDifficulty: 5,
			SliderMultiplier:  1.4,
			SliderTickRate:    1,
		},
	}

	offset := 0
	if formatVersion < 5 {
		offset = EARLY_VERSION_TIMING_OFFSET
	}

	sec := secNone
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			switch strings.ToLower(line) {
			case "[general]":
				sec = secGeneral
			case "[metadata]":
				sec = secMetadata
			case "[difficulty]":
				sec = secDifficulty
			case "[timingpoints]":
				sec = secTimingPoints
			case "[hitobjects]":
				sec = secHitObjects
			default:
				sec = secNone
			}
			continue
		}

		switch sec {
		case secGeneral:
			k, v := splitKeyVal(line)
			if strings.EqualFold(k, "mode") {
				b.General.Mode = parseInt(v, 0)
			}

		case secMetadata:
			k, v := splitKeyVal(line)
			switch strings.ToLower(k) {
			case "title":
				b.Metadata.Title = v
			case "artist":
				b.Metadata.Artist = v
			case "creator":
				b.Metadata.Creator = v
			case "version":
				b.Metadata.Version = v
			case "beatmapid":
				b.Metadata.BeatmapID = parseInt(v, 0)
			case "beatmapsetid":
				b.Metadata.BeatmapSetID = parseInt(v, 0)
			}

		case secDifficulty:
			k, v := splitKeyVal(line)
			switch strings.ToLower(k) {
			case "circlesize":
				b.Difficulty.CircleSize = parseFloat(v, 5)
			case "overalldifficulty":
				b.Difficulty.OverallDifficulty = parseFloat(v, 5)
			case "slidermultiplier":
				b.Difficulty.SliderMultiplier = parseFloat(v, 1.4)
			case "slidertickrate":
				b.Difficulty.SliderTickRate = parseFloat(v, 1)
			}

		case secTimingPoints:
			if tp, ok := parseTimingPoint(line, offset); ok {
				b.TimingPoints = append(b.TimingPoints, tp)
			}

		case secHitObjects:
			if ho, ok := parseHitObject(line, offset); ok {
				b.HitObjects = append(b.HitObjects, ho)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	b.Checksum = hex.EncodeToString(sum.Sum(nil))
	applyDifficultyRestrictions(&b.Difficulty, b.General.Mode)
	return b, nil
}

func parseTimingPoint(line string, offset int) (TimingPoint, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return TimingPoint{}, false
	}
	beatLen := parseFloatAllowNaN(parts[1])
	timingChange := true
	if len(parts) >= 7 {
		timingChange = strings.TrimSpace(parts[6]) == "1"
	}
	sv := 1.0
	if !math.IsNaN(beatLen) && beatLen < 0 {
		sv = 100.0 / -beatLen
	}
	return TimingPoint{
		Time:                     int(parseFloat(parts[0], 0)) + offset,
		BeatLength:               beatLen,
		TimingChange:             timingChange,
		SliderVelocityMultiplier: sv,
	}, true
}

func parseHitObject(line string, offset int) (HitObject, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 4 {
		return nil, false
	}
	flags := HitObjectTypeFlags(parseInt(parts[3], 0))
	base := BaseHO{
		Time: parseInt(parts[2], 0) + offset,
		Type: flags,
	}

	switch {
	case flags&TypeHold != 0:
		// mania hold: "endTime:hitSample"
		end := base.Time
		if len(parts) >= 6 {
			endStr, _, _ := strings.Cut(parts[5], ":")
			end = parseInt(endStr, base.Time-offset) + offset
		}
		return Hold{BaseHO: base, EndTime: end}, true

	case flags&TypeSpinner != 0:
		end := base.Time
		if len(parts) >= 6 {
			end = parseInt(parts[5], base.Time-offset) + offset
		}
		return Spinner{BaseHO: base, EndTime: end}, true

	case flags&TypeSlider != 0:
		slides := 1
		if len(parts) >= 7 {
			slides = max(1, parseInt(parts[6], 1))
		}
		length := 0.0
		if len(parts) >= 8 {
			length = max(0, parseFloat(parts[7], 0))
		}
		return Slider{BaseHO: base, Slides: slides, Length: length}, true

	default:
		return Circle{BaseHO: base}, true
	}
}

func splitKeyVal(line string) (key, val string) {
	k, v, _ := strings.Cut(line, ":")
	return strings.TrimSpace(k), strings.TrimSpace(v)
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return def
		}
		return int(f)
	}
	return v
}

func parseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func parseFloatAllowNaN(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func applyDifficultyRestrictions(d *Difficulty, mode int) {
	d.OverallDifficulty = clampFloat(d.OverallDifficulty, 0, 10)
	if mode == 3 {
		d.CircleSize = clampFloat(d.CircleSize, 1, MAX_MANIA_KEY_COUNT)
	} else {
		d.CircleSize = clampFloat(d.CircleSize, 0, 10)
	}
	d.SliderMultiplier = clampFloat(d.SliderMultiplier, 0.4, 3.6)
	d.SliderTickRate = clampFloat(d.SliderTickRate, 0.5, 8.0)
}
