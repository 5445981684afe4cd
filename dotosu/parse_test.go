package dotosu

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOsu = `osu file format v14

[General]
AudioFilename: audio.mp3
Mode: 0

[Metadata]
Title:Blue Zenith
Artist:xi
Creator:Asphyxia
Version:FOUR DIMENSIONS
BeatmapID:658127
BeatmapSetID:292301

[Difficulty]
HPDrainRate:6
CircleSize:4
OverallDifficulty:8
ApproachRate:9.6
SliderMultiplier:1.8
SliderTickRate:1

[Events]
0,0,"bg.jpg",0,0

[TimingPoints]
100,500,4,2,1,60,1,0
1100,-50,4,2,1,60,0,1

[HitObjects]
256,192,100,1,0,0:0:0:0:
100,100,600,2,0,B|200:100|300:100,2,180,2|0|0,0:0|0:0|0:0,0:0:0:0:
256,192,2000,12,0,3000,0:0:0:0:
`

func TestDecode(t *testing.T) {
	b, err := Decode(strings.NewReader(sampleOsu))
	require.NoError(t, err)

	assert.Equal(t, 14, b.FormatVersion)
	assert.Equal(t, 0, b.General.Mode)
	assert.Equal(t, "Blue Zenith", b.Metadata.Title)
	assert.Equal(t, "FOUR DIMENSIONS", b.Metadata.Version)
	assert.Equal(t, 658127, b.Metadata.BeatmapID)
	assert.Equal(t, 292301, b.Metadata.BeatmapSetID)
	assert.Equal(t, 1.8, b.Difficulty.SliderMultiplier)
	assert.Equal(t, 4.0, b.Difficulty.CircleSize)

	require.Len(t, b.TimingPoints, 2)
	assert.True(t, b.TimingPoints[0].TimingChange)
	assert.Equal(t, 500.0, b.TimingPoints[0].BeatLength)
	assert.False(t, b.TimingPoints[1].TimingChange)
	assert.Equal(t, 2.0, b.TimingPoints[1].SliderVelocityMultiplier)

	require.Len(t, b.HitObjects, 3)
	assert.Equal(t, KindCircle, b.HitObjects[0].Kind())
	slider, ok := b.HitObjects[1].(Slider)
	require.True(t, ok)
	assert.Equal(t, 2, slider.Slides)
	assert.Equal(t, 180.0, slider.Length)
	spinner, ok := b.HitObjects[2].(Spinner)
	require.True(t, ok)
	assert.Equal(t, 3000, spinner.EndTime)

	sum := md5.Sum([]byte(sampleOsu))
	assert.Equal(t, hex.EncodeToString(sum[:]), b.Checksum)
}

func TestDecodeManiaHold(t *testing.T) {
	src := "osu file format v14\n\n[General]\nMode: 3\n\n[Difficulty]\nCircleSize:7\n\n[HitObjects]\n" +
		"36,192,1000,1,0,0:0:0:0:\n" +
		"109,192,1200,128,0,1800:0:0:0:0:\n"
	b, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 3, b.General.Mode)
	assert.Equal(t, 7.0, b.Difficulty.CircleSize)
	require.Len(t, b.HitObjects, 2)
	hold, ok := b.HitObjects[1].(Hold)
	require.True(t, ok)
	assert.Equal(t, 1200, hold.StartTime())
	assert.Equal(t, 1800, hold.EndTime)
}

func TestDecodeEarlyVersionOffset(t *testing.T) {
	src := "osu file format v4\n[TimingPoints]\n0,400\n[HitObjects]\n64,64,1000,1,0\n"
	b, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, EARLY_VERSION_TIMING_OFFSET, b.TimingPoints[0].Time)
	assert.Equal(t, 1000+EARLY_VERSION_TIMING_OFFSET, b.HitObjects[0].StartTime())
}

func TestDecodeInvalidHeader(t *testing.T) {
	_, err := Decode(strings.NewReader("[General]\nMode: 0\n"))
	require.ErrorIs(t, err, ErrInvalidHeader)

	_, err = Decode(strings.NewReader("osu file format vX\n"))
	require.ErrorIs(t, err, ErrInvalidHeader)
}

func TestDecodeClampsDifficulty(t *testing.T) {
	src := "osu file format v14\n[Difficulty]\nSliderMultiplier:9\nSliderTickRate:0.1\n"
	b, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3.6, b.Difficulty.SliderMultiplier)
	assert.Equal(t, 0.5, b.Difficulty.SliderTickRate)
}
