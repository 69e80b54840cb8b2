package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistara-ai/vistara/internal/common"
)

// newTestAggregator lays out a dataset root with the three category
// directories and returns an aggregator over it plus the root path.
func newTestAggregator(t *testing.T) (*Aggregator, string) {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"biometric", "demographic", "enrolment"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	cfg := &common.DatasetsConfig{
		Dir:            root,
		BiometricDir:   "biometric",
		DemographicDir: "demographic",
		EnrolmentDir:   "enrolment",
	}
	return NewAggregator(cfg, common.GetLogger()), root
}

func writeFile(t *testing.T, root, category, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, category, name), []byte(content), 0644))
}

func TestLoadMergesSpellingVariantsIntoOneRow(t *testing.T) {
	agg, root := newTestAggregator(t)

	// Same district and month under two raw spellings of the state.
	writeFile(t, root, "biometric", "bio.csv",
		"state,district,date,pincode,bio_age_5_17,bio_age_17_\n"+
			"West Bengal ,Howrah,2024-01-05,700001,10,20\n")
	writeFile(t, root, "demographic", "demo.csv",
		"state,district,date,demo_age_5_17,demo_age_17_\n"+
			"WESTBENGAL,Howrah,2024-01-12,5,15\n")

	rows, err := agg.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1, "spelling variants must merge into a single canonical row")

	row := rows[0]
	assert.Equal(t, "WEST BENGAL", row.State)
	assert.Equal(t, "HOWRAH", row.District)
	assert.Equal(t, 10.0, row.BioAge5To17)
	assert.Equal(t, 20.0, row.BioAge17Up)
	assert.Equal(t, 5.0, row.DemoAge5To17)
	assert.Equal(t, 15.0, row.DemoAge17Up)
	// Enrolment had no data for this key-month: zero activity, not unknown.
	assert.Equal(t, 0.0, row.EnrolAge0To5)
	assert.Equal(t, 0.0, row.EnrolAge5To17)
	assert.Equal(t, 0.0, row.EnrolAge18Up)
}

func TestLoadOuterJoinKeepsCategoryOnlyRows(t *testing.T) {
	agg, root := newTestAggregator(t)

	writeFile(t, root, "enrolment", "enrol.csv",
		"state,district,date,age_0_5,age_5_17,age_18_greater\n"+
			"KERALA,KOCHI,2024-02-01,7,8,9\n")

	rows, err := agg.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 7.0, rows[0].EnrolAge0To5)
	assert.Equal(t, 0.0, rows[0].BioAge5To17)
}

func TestLoadSumsWithinGroupAndAcrossFiles(t *testing.T) {
	agg, root := newTestAggregator(t)

	// Two rows for the same key-month in one file, plus a second file.
	// Files are concatenated before summing; overlap double-counts by
	// contract.
	writeFile(t, root, "biometric", "a.csv",
		"state,district,date,bio_age_5_17,bio_age_17_\n"+
			"KERALA,KOCHI,2024-01-01,1,2\n"+
			"KERALA,KOCHI,2024-01-20,3,4\n")
	writeFile(t, root, "biometric", "b.csv",
		"state,district,date,bio_age_5_17,bio_age_17_\n"+
			"KERALA,KOCHI,2024-01-09,10,10\n")

	rows, err := agg.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 14.0, rows[0].BioAge5To17)
	assert.Equal(t, 16.0, rows[0].BioAge17Up)
}

func TestLoadDropsCorruptedAndUnparseableRows(t *testing.T) {
	agg, root := newTestAggregator(t)

	writeFile(t, root, "biometric", "bio.csv",
		"state,district,date,bio_age_5_17,bio_age_17_\n"+
			"12345,KOCHI,2024-01-01,1,1\n"+ // numeric state: corrupted
			"KERALA,KOCHI,garbage,1,1\n"+ // unparseable date: dropped
			"KERALA,KOCHI,2024-01-01,2,3\n")

	rows, err := agg.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].BioAge5To17)
	assert.Equal(t, 3.0, rows[0].BioAge17Up)
}

func TestLoadSkipsMalformedFileAndContinues(t *testing.T) {
	agg, root := newTestAggregator(t)

	// Missing required columns: skipped with a warning, not fatal.
	writeFile(t, root, "biometric", "broken.csv", "foo,bar\n1,2\n")
	writeFile(t, root, "biometric", "good.csv",
		"state,district,date,bio_age_5_17,bio_age_17_\n"+
			"KERALA,KOCHI,2024-01-01,2,3\n")

	rows, err := agg.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].BioAge5To17)
}

func TestLoadEmptyDatasetsYieldEmptyTable(t *testing.T) {
	agg, _ := newTestAggregator(t)

	rows, err := agg.Load()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadSortsByStateDistrictDate(t *testing.T) {
	agg, root := newTestAggregator(t)

	writeFile(t, root, "biometric", "bio.csv",
		"state,district,date,bio_age_5_17,bio_age_17_\n"+
			"KERALA,KOCHI,2024-02-01,1,1\n"+
			"KERALA,KOCHI,2024-01-01,1,1\n"+
			"ASSAM,SILCHAR,2024-03-01,1,1\n"+
			"KERALA,ALAPPUZHA,2024-01-01,1,1\n")

	rows, err := agg.Load()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "ASSAM", rows[0].State)
	assert.Equal(t, "ALAPPUZHA", rows[1].District)
	assert.Equal(t, "KOCHI", rows[2].District)
	assert.Equal(t, "2024-01", rows[2].Date.Format("2006-01"))
	assert.Equal(t, "2024-02", rows[3].Date.Format("2006-01"))
}
