package runner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"assetassist/internal/config"
	"assetassist/internal/fileutil"
	"assetassist/internal/imaging"
	"assetassist/internal/library"
	"assetassist/internal/logging"
	"assetassist/internal/matcher"
	"assetassist/internal/notifications"
	"assetassist/internal/organizer"
	"assetassist/internal/report"
	"assetassist/internal/services"
)

const (
	stage        = "runner"
	lockFileName = ".assetassist.lock"
)

// Runner executes one pass. It is not reusable; build a new one per run.
type Runner struct {
	cfg      *config.Config
	notifier notifications.Service
	log      *slog.Logger
	dryRun   bool
}

func New(cfg *config.Config, notifier notifications.Service, log *slog.Logger, dryRun bool) *Runner {
	if log == nil {
		log = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg, "")
	}
	return &Runner{cfg: cfg, notifier: notifier, log: log, dryRun: dryRun}
}

// Run processes the process directory once and returns the tallied summary.
// Per-file problems are logged and counted, never returned; only conditions
// that make the whole pass impossible surface as errors.
func (r *Runner) Run(ctx context.Context) (*report.Summary, error) {
	summary := report.NewSummary(r.cfg.BackupEnabled(), r.cfg.CompressImages)

	if !r.dryRun {
		if err := r.cfg.EnsureDirectories(); err != nil {
			return summary, services.Wrap(services.ErrConfiguration, stage, "setup",
				"create working directories", err)
		}

		lock := flock.New(filepath.Join(r.cfg.ProcessDir, lockFileName))
		held, err := lock.TryLock()
		if err != nil {
			return summary, services.Wrap(services.ErrConfiguration, stage, "lock",
				"acquire run lock", err)
		}
		if !held {
			return summary, services.Wrap(services.ErrConfiguration, stage, "lock",
				"another run is already processing this directory", nil)
		}
		defer func() {
			_ = lock.Unlock()
			_ = os.Remove(lock.Path())
		}()
	}

	movies := r.libraryIndex(r.cfg.MoviesDir, "movies")
	shows := r.libraryIndex(r.cfg.ShowsDir, "shows")
	collections := r.libraryIndex(r.cfg.CollectionsDir, "collections")

	match := matcher.New(movies, shows, collections, r.log)
	place := organizer.New(r.cfg, movies, shows, collections, r.log)

	if !r.dryRun {
		r.extractArchives(summary)
		r.flattenSubdirectories()
		if r.cfg.CompressImages {
			r.recompressImages()
		}
	}

	files, err := r.snapshot(summary)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		r.log.Info("no image files found to process")
	} else {
		r.log.Info("processing images", logging.Int("count", len(files)))
	}

	for _, filename := range files {
		if err := ctx.Err(); err != nil {
			summary.Finish()
			return summary, err
		}
		r.processOne(filename, match, place, summary)
	}

	summary.Finish()

	if !r.dryRun {
		if err := r.notifier.NotifyRunCompleted(ctx, summary.DiscordDescription()); err != nil {
			r.log.Warn("summary notification failed", logging.Error(err))
		}
	}
	return summary, nil
}

// libraryIndex builds an index over a configured root, pruning directories
// that do not exist so a missing optional library degrades to a warning.
func (r *Runner) libraryIndex(root, label string) *library.Index {
	if root == "" {
		return library.NewIndex("")
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		r.log.Warn("library directory missing, disabling",
			logging.String("library", label), logging.String("path", root))
		return library.NewIndex("")
	}
	return library.NewIndex(root)
}

func (r *Runner) extractArchives(summary *report.Summary) {
	entries, err := os.ReadDir(r.cfg.ProcessDir)
	if err != nil {
		r.log.Warn("list process directory", logging.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
			continue
		}
		path := filepath.Join(r.cfg.ProcessDir, entry.Name())
		r.log.Info("extracting archive", logging.String("file", entry.Name()))
		if err := fileutil.ExtractZip(path, r.cfg.ProcessDir); err != nil {
			r.log.Error("archive extraction failed",
				logging.String("file", entry.Name()), logging.Error(err))
			r.moveToFailed(entry.Name())
			summary.RecordFailure()
			continue
		}
		if err := os.Remove(path); err != nil {
			r.log.Warn("remove extracted archive", logging.Error(err))
		}
	}
}

func (r *Runner) flattenSubdirectories() {
	moved, err := fileutil.FlattenInto(r.cfg.ProcessDir, imaging.IsImage)
	if err != nil {
		r.log.Warn("flatten subdirectories", logging.Error(err))
	}
	if len(moved) > 0 {
		r.log.Info("flattened subdirectories", logging.Int("subdirs", len(moved)))
	}
}

func (r *Runner) recompressImages() {
	entries, err := os.ReadDir(r.cfg.ProcessDir)
	if err != nil {
		r.log.Warn("list process directory", logging.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !imaging.IsImage(entry.Name()) {
			continue
		}
		path := filepath.Join(r.cfg.ProcessDir, entry.Name())
		newPath, err := imaging.Recompress(path, r.cfg.ImageQuality)
		if err != nil {
			r.log.Warn("recompress failed, leaving original",
				logging.String("file", entry.Name()), logging.Error(err))
			continue
		}
		if newPath != path {
			r.log.Debug("converted to jpeg", logging.String("file", filepath.Base(newPath)))
		}
	}
}

// snapshot lists the files to process before placement starts, routing files
// with unsupported extensions straight to the failed directory.
func (r *Runner) snapshot(summary *report.Summary) ([]string, error) {
	entries, err := os.ReadDir(r.cfg.ProcessDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stage, "scan",
			"list process directory", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == lockFileName {
			continue
		}
		if imaging.IsSupported(entry.Name(), r.cfg.CompressImages) {
			files = append(files, entry.Name())
			continue
		}
		if imaging.IsImage(entry.Name()) {
			r.log.Info("unsupported format without compression",
				logging.String("file", entry.Name()))
		} else {
			r.log.Info("skipping non-image file", logging.String("file", entry.Name()))
		}
		if !r.dryRun {
			r.moveToFailed(entry.Name())
		}
		summary.RecordFailure()
	}
	return files, nil
}

func (r *Runner) processOne(filename string, match *matcher.Matcher, place *organizer.Organizer, summary *report.Summary) {
	src := filepath.Join(r.cfg.ProcessDir, filename)
	if _, err := os.Stat(src); err != nil {
		r.log.Warn("file disappeared during processing", logging.String("file", filename))
		return
	}

	m := match.Match(filename)

	if r.dryRun {
		if m.Category == matcher.CategoryUnknown {
			r.log.Info("would fail", logging.String("file", filename))
			summary.RecordFailure()
			return
		}
		r.log.Info("would place",
			logging.String("file", filename),
			logging.String("category", string(m.Category)))
		summary.Record(m.Category)
		return
	}

	placement, err := place.Place(filename, m)
	if err != nil {
		r.log.Error("placement failed",
			logging.String("file", filename),
			logging.String("category", string(m.Category)),
			logging.Error(err))
		r.moveToFailed(filename)
		summary.RecordFailure()
		return
	}

	matchedDir, _, _ := strings.Cut(placement.Library, "/")
	r.log.Info("placed asset",
		logging.String("file", filename),
		logging.String("category", string(placement.Category)),
		logging.String("title", library.ParseEntry(matchedDir).DisplayTitle()),
		logging.String("destination", placement.Library),
		logging.String("renamed", placement.Name))
	summary.Record(placement.Category)

	if r.cfg.BackupSource && r.cfg.BackupDir != "" {
		if err := fileutil.MoveFile(src, filepath.Join(r.cfg.BackupDir, filename)); err != nil {
			r.log.Error("source backup failed", logging.String("file", filename), logging.Error(err))
		}
		return
	}
	if err := os.Remove(src); err != nil {
		r.log.Error("delete processed file", logging.String("file", filename), logging.Error(err))
	}
}

func (r *Runner) moveToFailed(filename string) {
	src := filepath.Join(r.cfg.ProcessDir, filename)
	dest := filepath.Join(r.cfg.FailedDir, filename)
	if err := fileutil.MoveFile(src, dest); err != nil {
		r.log.Error("move to failed directory",
			logging.String("file", filename), logging.Error(err))
	}
}
