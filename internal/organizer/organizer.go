package organizer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"assetassist/internal/config"
	"assetassist/internal/fileutil"
	"assetassist/internal/imaging"
	"assetassist/internal/library"
	"assetassist/internal/logging"
	"assetassist/internal/matcher"
	"assetassist/internal/services"
	"assetassist/internal/textutil"
)

const stage = "organizer"

var videoExtensions = map[string]struct{}{
	".mkv": {},
	".mp4": {},
	".avi": {},
}

var episodeVideoPattern = regexp.MustCompile(`(?i)S(\d+)[\s.]?E(\d+)`)

// Placement records where an asset landed.
type Placement struct {
	Category matcher.Category
	// Library is the destination relative to its library root, for example
	// "Severance (2022)/Season 01".
	Library string
	// Name is the final filename inside the destination directory.
	Name string
}

// Organizer copies classified assets out of the process directory into the
// matched library directory, renaming per the configured media server's
// convention. Place never moves the source file; callers delete or back it
// up after a successful placement and route failures to the failed dir.
type Organizer struct {
	processDir          string
	service             string
	plexSpecials        *bool
	backupDir           string
	backupDest          bool
	supportsCollections bool

	movies      *library.Index
	shows       *library.Index
	collections *library.Index

	log *slog.Logger
}

func New(cfg *config.Config, movies, shows, collections *library.Index, log *slog.Logger) *Organizer {
	if log == nil {
		log = logging.NewNop()
	}
	return &Organizer{
		processDir:          cfg.ProcessDir,
		service:             cfg.Service,
		plexSpecials:        cfg.PlexSpecials,
		backupDir:           cfg.BackupDir,
		backupDest:          cfg.BackupDestination,
		supportsCollections: cfg.SupportsCollections(),
		movies:              movies,
		shows:               shows,
		collections:         collections,
		log:                 log,
	}
}

// Place routes one classified asset to its destination.
func (o *Organizer) Place(filename string, m matcher.Match) (Placement, error) {
	switch m.Category {
	case matcher.CategoryMovie:
		return o.placePoster(filename, m, o.movies)
	case matcher.CategoryShow:
		return o.placePoster(filename, m, o.shows)
	case matcher.CategoryCollection:
		return o.placeCollection(filename, m)
	case matcher.CategorySeason:
		return o.placeSeason(filename, m)
	case matcher.CategoryEpisode:
		return o.placeEpisode(filename, m)
	default:
		return Placement{}, services.Wrap(services.ErrNotFound, stage, "classify",
			"no category match, check file and directory naming", nil)
	}
}

// placePoster handles movie and show posters, which share their layout: the
// asset lands in the matched directory as poster.ext or fanart.ext depending
// on orientation.
func (o *Organizer) placePoster(filename string, m matcher.Match, idx *library.Index) (Placement, error) {
	if !idx.Available() {
		return Placement{}, services.Wrap(services.ErrNotFound, stage, "resolve",
			fmt.Sprintf("%s library directory not configured", m.Category), nil)
	}

	var dirName string
	var ok bool
	if m.Category == matcher.CategoryMovie {
		dirName, ok = idx.FindTitleYear(m.Title, m.Year)
	} else {
		dirName, ok = idx.FindShow(m.Title, m.Year)
	}
	if !ok {
		return Placement{}, services.Wrap(services.ErrNotFound, stage, "resolve",
			fmt.Sprintf("no matching directory for %q", m.Title), nil)
	}

	name, err := o.copyByOrientation(filename, idx.DirPath(dirName), "poster", "fanart")
	if err != nil {
		return Placement{}, err
	}
	return Placement{Category: m.Category, Library: dirName, Name: name}, nil
}

// placeCollection handles collection art. Plex has no collection asset
// directories, so only kometa and kodi accept the category; both the
// collections library and the movies library are searched.
func (o *Organizer) placeCollection(filename string, m matcher.Match) (Placement, error) {
	if !o.supportsCollections {
		label := o.service
		if label == "" {
			label = "unspecified service"
		}
		return Placement{}, services.Wrap(services.ErrValidation, stage, "collection",
			fmt.Sprintf("%s does not support collection assets", label), nil)
	}

	base := trimExt(filename)
	for _, idx := range []*library.Index{o.collections, o.movies} {
		if !idx.Available() {
			continue
		}
		dirName, ok := idx.FindCollection(base)
		if !ok {
			continue
		}
		name, err := o.copyByOrientation(filename, idx.DirPath(dirName), "poster", "background")
		if err != nil {
			return Placement{}, err
		}
		return Placement{Category: m.Category, Library: dirName, Name: name}, nil
	}
	return Placement{}, services.Wrap(services.ErrNotFound, stage, "collection",
		fmt.Sprintf("no matching collection directory for %q", base), nil)
}

func (o *Organizer) placeSeason(filename string, m matcher.Match) (Placement, error) {
	showDir, err := o.resolveShow(m.Title, m.Year, "")
	if err != nil {
		return Placement{}, err
	}
	ext := filepath.Ext(filename)

	switch o.service {
	case config.ServiceKometa:
		name := "Season00" + ext
		if !m.Specials {
			name = fmt.Sprintf("Season%02d%s", m.Season, ext)
		}
		return o.copyRenamed(filename, o.shows.DirPath(showDir), showDir, name, m.Category)

	case config.ServicePlex:
		seasonDir, err := o.plexSeasonDir(m)
		if err != nil {
			return Placement{}, err
		}
		target := filepath.Join(o.shows.DirPath(showDir), seasonDir)
		if err := os.MkdirAll(target, 0o755); err != nil {
			return Placement{}, services.Wrap(services.ErrTransient, stage, "season",
				"create season directory", err)
		}
		name := "season-specials-poster" + ext
		if !m.Specials {
			name = fmt.Sprintf("Season%02d%s", m.Season, ext)
		}
		return o.copyRenamed(filename, target, showDir+"/"+seasonDir, name, m.Category)

	case config.ServiceKodi:
		name := "season-specials-poster" + ext
		if !m.Specials {
			name = fmt.Sprintf("season%02d-poster%s", m.Season, ext)
		}
		return o.copyRenamed(filename, o.shows.DirPath(showDir), showDir, name, m.Category)

	default:
		return Placement{}, services.Wrap(services.ErrValidation, stage, "season",
			"no media service configured for season assets", nil)
	}
}

func (o *Organizer) placeEpisode(filename string, m matcher.Match) (Placement, error) {
	showDir, err := o.resolveShow(m.Title, m.Year, matcher.TitleHint(filename))
	if err != nil {
		return Placement{}, err
	}
	ext := filepath.Ext(filename)

	switch o.service {
	case config.ServiceKometa:
		name := fmt.Sprintf("S%02dE%02d%s", m.Season, m.Episode, ext)
		return o.copyRenamed(filename, o.shows.DirPath(showDir), showDir, name, m.Category)

	case config.ServicePlex, config.ServiceKodi:
		seasonDir, err := o.episodeSeasonDir(m)
		if err != nil {
			return Placement{}, err
		}
		target := filepath.Join(o.shows.DirPath(showDir), seasonDir)
		if info, statErr := os.Stat(target); statErr != nil || !info.IsDir() {
			return Placement{}, services.Wrap(services.ErrNotFound, stage, "episode",
				fmt.Sprintf("%s does not exist in %s", seasonDir, showDir), nil)
		}
		videoBase, found := findEpisodeVideo(target, m.Season, m.Episode)
		if !found {
			return Placement{}, services.Wrap(services.ErrNotFound, stage, "episode",
				fmt.Sprintf("no matching video file in %s/%s", showDir, seasonDir), nil)
		}
		name := videoBase + ext
		if o.service == config.ServiceKodi {
			name = videoBase + "-thumb" + ext
		}
		return o.copyRenamed(filename, target, showDir+"/"+seasonDir, name, m.Category)

	default:
		return Placement{}, services.Wrap(services.ErrValidation, stage, "episode",
			"no media service configured for episode assets", nil)
	}
}

// resolveShow finds the show directory: by title and year when the filename
// carried them, otherwise by fuzzy lookup on the hint.
func (o *Organizer) resolveShow(title, year, hint string) (string, error) {
	if !o.shows.Available() {
		return "", services.Wrap(services.ErrNotFound, stage, "resolve",
			"shows library directory not configured", nil)
	}
	if title != "" {
		if dirName, ok := o.shows.FindShow(title, year); ok {
			return dirName, nil
		}
	} else if hint != "" {
		if dirName, ok := o.shows.FindFuzzy(hint); ok {
			return dirName, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, stage, "resolve",
		"no matching show directory found", nil)
}

// plexSeasonDir maps a season asset to Plex's directory name. Specials
// placement needs the operator's choice between the "Specials" and
// "Season 00" layouts.
func (o *Organizer) plexSeasonDir(m matcher.Match) (string, error) {
	if !m.Specials {
		return fmt.Sprintf("Season %02d", m.Season), nil
	}
	if o.plexSpecials == nil {
		return "", services.Wrap(services.ErrValidation, stage, "season",
			"plex_specials is not set, set it to true or false", nil)
	}
	if *o.plexSpecials {
		return "Specials", nil
	}
	return "Season 00", nil
}

// episodeSeasonDir maps an episode's season number to the season directory.
// Season zero follows plex_specials under Plex; Kodi always uses Season 00.
func (o *Organizer) episodeSeasonDir(m matcher.Match) (string, error) {
	if m.Season != 0 {
		return fmt.Sprintf("Season %02d", m.Season), nil
	}
	if o.service == config.ServiceKodi {
		return "Season 00", nil
	}
	if o.plexSpecials == nil {
		return "", services.Wrap(services.ErrValidation, stage, "episode",
			"plex_specials is not set, set it to true or false", nil)
	}
	if *o.plexSpecials {
		return "Specials", nil
	}
	return "Season 00", nil
}

// copyByOrientation copies the asset and renames it portraitName.ext or
// landscapeName.ext based on the decoded image dimensions. When the image
// cannot be decoded the copy stays under its original name, matching how
// operators expect a partially supported asset to survive rather than fail.
func (o *Organizer) copyByOrientation(filename, destDir, portraitName, landscapeName string) (string, error) {
	src := filepath.Join(o.processDir, filename)
	dest := filepath.Join(destDir, filename)
	if err := fileutil.CopyFile(src, dest); err != nil {
		return "", services.Wrap(services.ErrTransient, stage, "copy", "copy asset into library", err)
	}

	portrait, err := imaging.Portrait(dest)
	if err != nil {
		o.log.Warn("orientation probe failed, keeping original name",
			logging.String("file", filename), logging.Error(err))
		return filename, nil
	}
	name := landscapeName
	if portrait {
		name = portraitName
	}
	name += filepath.Ext(filename)
	o.backupExisting(filepath.Join(destDir, name))
	if err := fileutil.RenameFile(dest, filepath.Join(destDir, name)); err != nil {
		return "", services.Wrap(services.ErrTransient, stage, "rename", "rename placed asset", err)
	}
	return name, nil
}

// copyRenamed copies the asset into destDir under a fixed final name.
func (o *Organizer) copyRenamed(filename, destDir, libraryLabel, name string, category matcher.Category) (Placement, error) {
	src := filepath.Join(o.processDir, filename)
	o.backupExisting(filepath.Join(destDir, name))
	if err := fileutil.CopyFile(src, filepath.Join(destDir, name)); err != nil {
		return Placement{}, services.Wrap(services.ErrTransient, stage, "copy", "copy asset into library", err)
	}
	return Placement{Category: category, Library: libraryLabel, Name: name}, nil
}

// backupExisting preserves a destination file that is about to be
// overwritten. The backup name is prefixed with the containing directory so
// poster.jpg files from different titles do not collide.
func (o *Organizer) backupExisting(finalPath string) {
	if !o.backupDest || o.backupDir == "" {
		return
	}
	if _, err := os.Stat(finalPath); err != nil {
		return
	}
	backupName := textutil.SanitizeFileName(
		filepath.Base(filepath.Dir(finalPath)) + " - " + filepath.Base(finalPath))
	if err := fileutil.MoveFile(finalPath, filepath.Join(o.backupDir, backupName)); err != nil {
		o.log.Warn("destination backup failed",
			logging.String("file", finalPath), logging.Error(err))
		return
	}
	o.log.Debug("backed up existing destination file",
		logging.String("file", finalPath))
}

// findEpisodeVideo locates the video file for SxxEyy inside a season
// directory and returns its basename without extension.
func findEpisodeVideo(seasonDir string, season, episode int) (string, bool) {
	listing, err := os.ReadDir(seasonDir)
	if err != nil {
		return "", false
	}
	for _, entry := range listing {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := videoExtensions[ext]; !ok {
			continue
		}
		vm := episodeVideoPattern.FindStringSubmatch(entry.Name())
		if vm == nil {
			continue
		}
		vs, _ := strconv.Atoi(vm[1])
		ve, _ := strconv.Atoi(vm[2])
		if vs == season && ve == episode {
			return trimExt(entry.Name()), true
		}
	}
	return "", false
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
