package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistara-ai/vistara/internal/common"
)

func TestRenderProducesPDF(t *testing.T) {
	svc := NewPDFService(common.GetLogger())
	brief := &Brief{
		Title:    "Priority Alert: KOCHI District (KERALA)",
		Body:     "Executive Summary:\nThe district of KOCHI has been flagged with a critical anomaly score of -0.31.\n\nObservations:\n- Current velocity: 2.70\n",
		State:    "KERALA",
		District: "KOCHI",
	}

	data, err := svc.Render(brief)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output should carry the PDF magic header")
}
