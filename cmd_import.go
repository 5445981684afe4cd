package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hitstats/catalog"
	"hitstats/dotosu"
)

func (a *app) newImportCmd() *cobra.Command {
	workers := defaultWorkers
	cmd := &cobra.Command{
		Use:   "import <path>...",
		Short: "Summarize .osu files into the catalog",
		Long: `import walks the given files and directories for .osu files, counts the
judged objects of each for its own ruleset and stores the result in the
catalog, keyed by file checksum.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyIntConfig(cmd, "workers", &workers, a.cfg.Import.Workers)
			return a.runImport(cmd, args, max(1, workers))
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "j", defaultWorkers, "files decoded in parallel")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, roots []string, workers int) error {
	paths, err := findBeatmapFiles(roots)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .osu files under %s", strings.Join(roots, ", "))
	}

	cat, err := catalog.Open(a.catalogPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if cerr := cat.Close(); cerr != nil {
			a.logger.Error("failed to close catalog", "err", cerr)
		}
	}()

	var imported, unchanged, failed atomic.Int32
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var known bool
			err := Guard(func() (err error) {
				known, err = importBeatmap(ctx, cat, path)
				return err
			})
			switch {
			case err != nil:
				failed.Add(1)
				a.logger.Warn("skipping beatmap", "path", path, "err", err)
			case known:
				unchanged.Add(1)
				a.logger.Debug("beatmap already in catalog", "path", path)
			default:
				imported.Add(1)
				a.logger.Debug("imported beatmap", "path", path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("import finished", "imported", imported.Load(), "unchanged", unchanged.Load(), "failed", failed.Load())
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d/%d beatmaps (%d unchanged)\n", imported.Load(), len(paths), unchanged.Load())
	if imported.Load()+unchanged.Load() == 0 {
		return fmt.Errorf("none of %d beatmaps could be imported", len(paths))
	}
	return nil
}

// importBeatmap stores the summary of the file at path. It reports known
// when the catalog already holds the same file contents.
func importBeatmap(ctx context.Context, cat *catalog.Catalog, path string) (known bool, err error) {
	b, err := dotosu.DecodeFile(path)
	if err != nil {
		return false, err
	}
	ruleset, err := NativeRuleset(b)
	if err != nil {
		return false, err
	}
	switch _, err := cat.GetByChecksum(ctx, b.Checksum, ruleset); {
	case err == nil:
		return true, nil
	case !errors.Is(err, catalog.ErrNotFound):
		return false, err
	}

	summary, err := SummarizeBeatmap(b, ruleset)
	if err != nil {
		return false, err
	}
	return false, cat.Put(ctx, catalog.Entry{
		BeatmapID:    b.Metadata.BeatmapID,
		BeatmapSetID: b.Metadata.BeatmapSetID,
		Checksum:     b.Checksum,
		Ruleset:      ruleset,
		Artist:       b.Metadata.Artist,
		Title:        b.Metadata.Title,
		Version:      b.Metadata.Version,
		Summary:      summary,
	})
}

func findBeatmapFiles(roots []string) ([]string, error) {
	var paths []string
	for _, root := range roots {
		if err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(d.Name()), ".osu") {
				paths = append(paths, path)
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)
	return paths, nil
}
