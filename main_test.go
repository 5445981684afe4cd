package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const taikoOsu = `osu file format v14

[General]
Mode: 1

[Metadata]
Title:Kodoku
Version:Oni
BeatmapID:4242
BeatmapSetID:99

[TimingPoints]
0,500,4,1,0,100,1,0

[HitObjects]
256,192,0,1,0,0:0:0:0:
256,192,250,1,8,0:0:0:0:
256,192,500,1,0,0:0:0:0:
256,192,750,1,2,0:0:0:0:
256,192,1000,2,0,L|300:192,1,140
256,192,2000,12,0,3000,0:0:0:0:
`

// run executes the CLI with an isolated config and catalog.
func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	base := []string{
		"--config", filepath.Join(dir, "config.toml"),
		"--catalog", filepath.Join(dir, "catalog.db"),
	}
	cmd.SetArgs(append(args, base...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type synthResult struct {
	Ruleset     string         `json:"ruleset"`
	Mode        string         `json:"mode"`
	Statistics  map[string]int `json:"statistics"`
	Accuracy    float64        `json:"accuracy"`
	Combo       int            `json:"combo"`
	MaxCombo    int            `json:"max_combo"`
	Adjustments []struct {
		Field string `json:"field"`
	} `json:"adjustments"`
}

func TestSynthFromObjectCounts(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, dir, "synth", "-r", "taiko", "--objects", "50", "--accuracy", "90")
	require.NoError(t, err)

	var res synthResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "taiko", res.Ruleset)
	assert.Equal(t, "standard", res.Mode)
	assert.Equal(t, map[string]int{"great": 40, "good": 10, "miss": 0}, res.Statistics)
	assert.InDelta(t, 0.9, res.Accuracy, 1e-12)
	assert.Equal(t, 50, res.MaxCombo)
}

func TestSynthOverridesAndClassicMod(t *testing.T) {
	dir := t.TempDir()
	out, stderr, err := run(t, dir, "synth", "--objects", "100", "--accuracy", "50",
		"--meh", "20", "--mods", "HDCL", "--combo", "500")
	require.NoError(t, err)

	var res synthResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "classic", res.Mode)
	assert.Equal(t, 80, res.Statistics["great"])
	assert.Equal(t, 20, res.Statistics["meh"])
	assert.Equal(t, 100, res.Combo)
	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, "combo", res.Adjustments[0].Field)
	assert.Contains(t, stderr, "adjusted input")
}

func TestSynthFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kodoku.osu")
	require.NoError(t, os.WriteFile(path, []byte(taikoOsu), 0o644))

	out, _, err := run(t, dir, "synth", "-f", path, "--accuracy", "87.5", "-o", "yaml")
	require.NoError(t, err)

	var res struct {
		Ruleset    string         `yaml:"ruleset"`
		Statistics map[string]int `yaml:"statistics"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, "taiko", res.Ruleset)
	assert.Equal(t, map[string]int{"great": 3, "good": 1, "miss": 0}, res.Statistics)
}

func TestSynthRejectsManiaSlider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.osu")
	mania := "osu file format v14\n\n[General]\nMode: 3\n\n[TimingPoints]\n0,500,4,1,0,100,1,0\n\n" +
		"[HitObjects]\n64,192,500,1,0,0:0:0:0:\n64,192,1000,2,0,L|64:100,1,70\n"
	require.NoError(t, os.WriteFile(path, []byte(mania), 0o644))

	_, _, err := run(t, dir, "synth", "-f", path, "--accuracy", "95")
	require.ErrorIs(t, err, ErrUnexpectedObject)
	assert.ErrorContains(t, err, "slider at 1000 in a mania beatmap")

	_, _, err = run(t, dir, "eval", "-f", path, "-c", "perfect=1")
	require.ErrorIs(t, err, ErrUnexpectedObject)
}

func TestSynthNeedsBeatmap(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "synth", "--accuracy", "90")
	require.ErrorIs(t, err, errNoBeatmap)
}

func TestSynthConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := "[synth]\nruleset = \"mania\"\nformat = \"yaml\"\n\n[log]\nlevel = \"error\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o644))

	out, stderr, err := run(t, dir, "synth", "--objects", "10", "--misses", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "ruleset: mania")
	assert.Empty(t, stderr)

	out, _, err = run(t, dir, "synth", "-r", "taiko", "-o", "json", "--objects", "10")
	require.NoError(t, err)
	assert.Contains(t, out, `"ruleset": "taiko"`)
}

func TestEval(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, dir, "eval", "-r", "taiko", "--objects", "50", "-c", "great=40", "-c", "good=10")
	require.NoError(t, err)

	var res synthResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 0.9, res.Accuracy, 1e-12)
	assert.Equal(t, 50, res.MaxCombo)

	_, _, err = run(t, dir, "eval", "-r", "taiko", "--objects", "50", "-c", "perfect=50")
	require.ErrorContains(t, err, "perfect is not judged in taiko")

	_, _, err = run(t, dir, "eval", "--objects", "50", "-c", "greet=50")
	require.ErrorContains(t, err, "unknown judgement kind")
}

func TestImportAndShow(t *testing.T) {
	dir := t.TempDir()
	maps := filepath.Join(dir, "songs", "99 Kodoku")
	require.NoError(t, os.MkdirAll(maps, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(maps, "oni.osu"), []byte(taikoOsu), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(maps, "broken.osu"), []byte("not a beatmap"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(maps, "audio.mp3"), []byte{0}, 0o644))

	out, stderr, err := run(t, dir, "import", filepath.Join(dir, "songs"), "-j", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1/2 beatmaps (0 unchanged)")
	assert.Contains(t, stderr, "skipping beatmap")

	out, _, err = run(t, dir, "show", "4242")
	require.NoError(t, err)
	var entries []struct {
		BeatmapID int    `json:"beatmap_id"`
		Ruleset   string `json:"ruleset"`
		Title     string `json:"title"`
		Summary   struct {
			TotalBaseObjects int `json:"total_base_objects"`
			Sliders          int `json:"sliders"`
			Spinners         int `json:"spinners"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "taiko", entries[0].Ruleset)
	assert.Equal(t, "Kodoku", entries[0].Title)
	assert.Equal(t, 4, entries[0].Summary.TotalBaseObjects)
	assert.Equal(t, 1, entries[0].Summary.Sliders)
	assert.Equal(t, 1, entries[0].Summary.Spinners)

	out, _, err = run(t, dir, "synth", "-b", "4242", "-r", "taiko", "--accuracy", "87.5")
	require.NoError(t, err)
	var res synthResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, map[string]int{"great": 3, "good": 1, "miss": 0}, res.Statistics)

	_, _, err = run(t, dir, "show", "1")
	require.Error(t, err)
}

func TestImportSkipsUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	songs := filepath.Join(dir, "songs")
	require.NoError(t, os.MkdirAll(songs, 0o755))
	path := filepath.Join(songs, "oni.osu")
	require.NoError(t, os.WriteFile(path, []byte(taikoOsu), 0o644))

	out, _, err := run(t, dir, "import", songs)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1/1 beatmaps (0 unchanged)")

	out, _, err = run(t, dir, "import", songs)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 0/1 beatmaps (1 unchanged)")

	edited := strings.Replace(taikoOsu, "Version:Oni", "Version:Inner Oni", 1)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))
	out, _, err = run(t, dir, "import", songs)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1/1 beatmaps (0 unchanged)")

	out, _, err = run(t, dir, "show", "4242")
	require.NoError(t, err)
	var entries []struct {
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
}

func TestImportNothingFound(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, dir, "import", dir)
	require.ErrorContains(t, err, "no .osu files")
}
