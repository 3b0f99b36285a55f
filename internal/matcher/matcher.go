package matcher

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"assetassist/internal/library"
	"assetassist/internal/logging"
)

// Category is the classification assigned to an asset filename.
type Category string

const (
	CategoryMovie      Category = "movie"
	CategoryShow       Category = "show"
	CategorySeason     Category = "season"
	CategoryEpisode    Category = "episode"
	CategoryCollection Category = "collection"
	CategoryUnknown    Category = "unknown"
)

var (
	seasonPattern   = regexp.MustCompile(`(?i)(?:^|\s|-)\s*Season\s+(\d+)`)
	episodePattern  = regexp.MustCompile(`(?i)S(\d+)[\s.]?E(\d+)`)
	specialsPattern = regexp.MustCompile(`(?i)Specials`)
	// collectionPattern accepts "Name Collection.ext" and "Namecollection".
	collectionPattern = regexp.MustCompile(`(?i)(.+?)(?:\s+Collection|\s*collection)(?:\s*\.|\s*$)`)
	// hintPattern cuts a show title out of an episode filename at the first
	// dash, SxxEyy marker, or opening parenthesis.
	hintPattern = regexp.MustCompile(`(?i)(.+?)\s*(?:-|S\d+|\()`)
)

// Match is the outcome of classifying one filename.
type Match struct {
	Category Category
	// Title and Year are the parsed "Title (Year)" portion, when present.
	Title string
	Year  string
	// Season and Episode are -1 when the filename carries no number.
	Season  int
	Episode int
	// Specials marks a specials poster, which has no season number of its
	// own but places like season zero.
	Specials bool
}

// Matcher classifies asset filenames against the configured library roots.
// A nil or unconfigured index disables its category.
type Matcher struct {
	movies      *library.Index
	shows       *library.Index
	collections *library.Index
	log         *slog.Logger
}

func New(movies, shows, collections *library.Index, log *slog.Logger) *Matcher {
	if log == nil {
		log = logging.NewNop()
	}
	return &Matcher{movies: movies, shows: shows, collections: collections, log: log}
}

// Match classifies filename. Precedence follows placement ambiguity: a
// year-matched movie wins over everything, a collection over TV categories,
// and season/specials/episode markers over a bare show poster. TV categories
// only hold when the show directory actually resolves, so stray files do not
// land in the wrong library.
func (m *Matcher) Match(filename string) Match {
	result := Match{Category: CategoryUnknown, Season: -1, Episode: -1}
	result.Title, result.Year = library.ParseTitleYear(filename)
	if result.Title != "" {
		m.log.Debug("parsed title",
			logging.String("file", filename),
			logging.String("title", result.Title),
			logging.String("year", result.Year))
	}

	if result.Title != "" && m.movies.Available() {
		if _, ok := m.movies.FindTitleYear(result.Title, result.Year); ok {
			result.Category = CategoryMovie
			return result
		}
	}

	if cm := collectionPattern.FindStringSubmatch(filename); cm != nil && m.collections.Available() {
		if _, ok := m.collections.FindCollection(baseName(filename)); ok {
			result.Category = CategoryCollection
			return result
		}
	}

	if m.shows.Available() {
		seasonMatch := seasonPattern.FindStringSubmatch(filename)
		episodeMatch := episodePattern.FindStringSubmatch(filename)

		switch {
		case seasonMatch != nil:
			result.Category = CategorySeason
			result.Season = parseNumber(seasonMatch[1])
		case specialsPattern.MatchString(filename):
			result.Category = CategorySeason
			result.Specials = true
		case episodeMatch != nil:
			result.Category = CategoryEpisode
			result.Season = parseNumber(episodeMatch[1])
			result.Episode = parseNumber(episodeMatch[2])
		case result.Title != "":
			if _, ok := m.shows.FindShow(result.Title, result.Year); ok {
				result.Category = CategoryShow
			}
			return result
		default:
			return result
		}

		// A titled season/episode asset must belong to a known show.
		if result.Title != "" {
			if _, ok := m.shows.FindShow(result.Title, result.Year); !ok {
				result.Category = CategoryUnknown
				result.Season = -1
				result.Episode = -1
				result.Specials = false
			}
		}
	}

	return result
}

// TitleHint extracts a probable show title from an episode filename for
// fuzzy directory lookup, falling back to everything before the first dot.
func TitleHint(filename string) string {
	if hm := hintPattern.FindStringSubmatch(filename); hm != nil {
		return strings.TrimSpace(hm[1])
	}
	return strings.SplitN(filename, ".", 2)[0]
}

func baseName(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		return filename[:idx]
	}
	return filename
}

func parseNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
