package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"assetassist/internal/matcher"
)

// Summary accumulates per-category counts over one run.
type Summary struct {
	RunID   string
	Started time.Time

	Movies      int
	Shows       int
	Seasons     int
	Episodes    int
	Collections int
	Failed      int

	BackupEnabled      bool
	CompressionEnabled bool

	Duration time.Duration
}

// NewSummary starts a summary with a fresh run identifier.
func NewSummary(backupEnabled, compressionEnabled bool) *Summary {
	return &Summary{
		RunID:              uuid.NewString(),
		Started:            time.Now(),
		BackupEnabled:      backupEnabled,
		CompressionEnabled: compressionEnabled,
	}
}

// Record tallies one successfully placed asset.
func (s *Summary) Record(category matcher.Category) {
	switch category {
	case matcher.CategoryMovie:
		s.Movies++
	case matcher.CategoryShow:
		s.Shows++
	case matcher.CategorySeason:
		s.Seasons++
	case matcher.CategoryEpisode:
		s.Episodes++
	case matcher.CategoryCollection:
		s.Collections++
	}
}

// RecordFailure tallies one asset routed to the failed directory.
func (s *Summary) RecordFailure() {
	s.Failed++
}

// Finish fixes the run duration.
func (s *Summary) Finish() {
	s.Duration = time.Since(s.Started)
}

// Processed returns the number of successfully placed assets.
func (s *Summary) Processed() int {
	return s.Movies + s.Shows + s.Seasons + s.Episodes + s.Collections
}

// Total returns the number of assets handled, including failures.
func (s *Summary) Total() int {
	return s.Processed() + s.Failed
}

// DiscordDescription renders the notification body.
func (s *Summary) DiscordDescription() string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Movie Assets:**\n %d\n", s.Movies)
	fmt.Fprintf(&b, "**Show Assets:**\n %d\n", s.Shows)
	fmt.Fprintf(&b, "**Season Assets:**\n %d\n", s.Seasons)
	fmt.Fprintf(&b, "**Episode Assets:**\n %d\n", s.Episodes)
	fmt.Fprintf(&b, "**Collection Assets:**\n %d\n", s.Collections)
	fmt.Fprintf(&b, "**Failures:**\n %d\n", s.Failed)
	fmt.Fprintf(&b, "**Backup Enabled?**\n %s\n", yesNo(s.BackupEnabled))
	fmt.Fprintf(&b, "**Total Run Time:**\n %.2f seconds\n", s.Duration.Seconds())
	return b.String()
}

// Rows returns label/count pairs for console table rendering.
func (s *Summary) Rows() [][]string {
	return [][]string{
		{"Movie assets", strconv.Itoa(s.Movies)},
		{"Show assets", strconv.Itoa(s.Shows)},
		{"Season assets", strconv.Itoa(s.Seasons)},
		{"Episode assets", strconv.Itoa(s.Episodes)},
		{"Collection assets", strconv.Itoa(s.Collections)},
		{"Failures", strconv.Itoa(s.Failed)},
		{"Backup enabled", yesNo(s.BackupEnabled)},
		{"Compression", yesNo(s.CompressionEnabled)},
		{"Total run time", fmt.Sprintf("%.2f seconds", s.Duration.Seconds())},
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
