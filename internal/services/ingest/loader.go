package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
)

// category describes one source dataset: its subdirectory and the
// numeric counter columns its files carry.
type category struct {
	name     string
	counters []string
}

var (
	biometricCategory   = category{name: "biometric", counters: []string{"bio_age_5_17", "bio_age_17_"}}
	demographicCategory = category{name: "demographic", counters: []string{"demo_age_5_17", "demo_age_17_"}}
	enrolmentCategory   = category{name: "enrolment", counters: []string{"age_0_5", "age_5_17", "age_18_greater"}}
)

// rawRow is one cleaned source row: canonical region names, a month
// bucket and the category counters in declaration order. Columns
// outside the known schema (pincode and friends) are left untouched as
// text, which preserves leading zeros.
type rawRow struct {
	state    string
	district string
	date     time.Time
	counters []float64
}

// dateLayouts are tried in order when parsing the date column. Values
// are bucketed to the first day of the month afterwards.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"Jan-2006",
	"2006-01",
}

// parseMonth parses a raw date value into its calendar month bucket.
// Returns the zero time when no layout matches; callers drop such rows
// rather than failing the run.
func parseMonth(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// loadCategory reads every CSV file in the category directory and
// returns the cleaned rows of all files concatenated. A file that
// cannot be read or is missing required columns is skipped with a
// warning; a missing directory means the category is entirely absent
// and contributes nothing.
func loadCategory(dir string, cat category, logger arbor.ILogger) []rawRow {
	pattern := filepath.Join(dir, "*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		logger.Warn().Err(err).Str("pattern", pattern).Msg("Failed to list category files")
		return nil
	}
	sort.Strings(files)

	var rows []rawRow
	for _, file := range files {
		fileRows, err := parseFile(file, cat)
		if err != nil {
			logger.Warn().Err(err).Str("file", file).Msg("Skipping unreadable source file")
			continue
		}
		rows = append(rows, fileRows...)
	}

	logger.Info().
		Str("category", cat.name).
		Int("files", len(files)).
		Int("rows", len(rows)).
		Msg("Loaded category dataset")

	return rows
}

// parseFile parses one CSV file into cleaned rows. Rows with an
// unparseable date or a purely numeric state are dropped silently;
// unparseable counter cells count as zero.
func parseFile(path string, cat category) ([]rawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range append([]string{"state", "district", "date"}, cat.counters...) {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("file %s is missing column %q", path, required)
		}
	}

	var rows []rawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		field := func(name string) string {
			idx := columns[name]
			if idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		date := parseMonth(field("date"))
		if date.IsZero() {
			continue
		}

		state := field("state")
		if IsNumericName(state) {
			continue
		}

		row := rawRow{
			state:    NormalizeName(state),
			district: NormalizeName(field("district")),
			date:     date,
			counters: make([]float64, len(cat.counters)),
		}
		for i, name := range cat.counters {
			if v, err := strconv.ParseFloat(strings.TrimSpace(field(name)), 64); err == nil {
				row.counters[i] = v
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
