package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistara-ai/vistara/internal/models"
)

func TestBuildBriefPicksLowestScoringHighRiskRow(t *testing.T) {
	rows := []*models.RegionMonth{
		{State: "KERALA", District: "KOCHI", RiskLevel: models.RiskHigh, AnomalyScore: -0.05, Velocity: 1.2, DivergenceRatio: 3.4},
		{State: "ASSAM", District: "SILCHAR", RiskLevel: models.RiskHigh, AnomalyScore: -0.31, Velocity: 2.7, DivergenceRatio: 8.1},
		{State: "BIHAR", District: "PATNA", RiskLevel: models.RiskMedium, AnomalyScore: -0.90, Velocity: 0.3, DivergenceRatio: 1.0},
	}

	brief, ok := BuildBrief(rows)
	require.True(t, ok)

	// The Medium row scores lower but only High tier rows qualify.
	assert.Equal(t, "SILCHAR", brief.District)
	assert.Equal(t, "ASSAM", brief.State)
	assert.Equal(t, "Priority Alert: SILCHAR District (ASSAM)", brief.Title)

	assert.Contains(t, brief.Body, "critical anomaly score of -0.31")
	assert.Contains(t, brief.Body, "Current velocity: 2.70")
	assert.Contains(t, brief.Body, "Divergence ratio: 8.10")
	assert.Contains(t, brief.Body, "deploy 3 mobile update kits to SILCHAR")
}

func TestBuildBriefSectionsInOrder(t *testing.T) {
	rows := []*models.RegionMonth{
		{State: "KERALA", District: "KOCHI", RiskLevel: models.RiskHigh, AnomalyScore: -0.1},
	}

	brief, ok := BuildBrief(rows)
	require.True(t, ok)

	sections := []string{"Executive Summary:", "Observations:", "Projections:", "Recommendations:"}
	last := -1
	for _, section := range sections {
		idx := strings.Index(brief.Body, section)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", section)
		require.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}
}

func TestBuildBriefNoHighRiskRows(t *testing.T) {
	rows := []*models.RegionMonth{
		{State: "KERALA", District: "KOCHI", RiskLevel: models.RiskLow},
		{State: "ASSAM", District: "SILCHAR", RiskLevel: models.RiskMedium},
	}

	brief, ok := BuildBrief(rows)
	assert.False(t, ok)
	assert.Nil(t, brief)

	brief, ok = BuildBrief(nil)
	assert.False(t, ok)
	assert.Nil(t, brief)
}

func TestBriefText(t *testing.T) {
	brief := &Brief{Title: "Priority Alert: KOCHI District (KERALA)", Body: "Executive Summary:\ndetails\n"}
	text := brief.Text()

	assert.True(t, strings.HasPrefix(text, brief.Title+"\n\n"))
	assert.Contains(t, text, "Executive Summary:")
}
