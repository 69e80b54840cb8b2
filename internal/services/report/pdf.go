package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
)

// PDFService renders policy briefs as PDF documents.
type PDFService struct {
	logger arbor.ILogger
}

// NewPDFService creates a new PDF service
func NewPDFService(logger arbor.ILogger) *PDFService {
	return &PDFService{
		logger: logger,
	}
}

// Render converts a policy brief to a PDF byte slice.
func (s *PDFService) Render(brief *Brief) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.MultiCell(0, 8, brief.Title, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	for _, line := range strings.Split(brief.Body, "\n") {
		// Section labels end with a colon and get bold treatment.
		if strings.HasSuffix(line, ":") && !strings.HasPrefix(line, "-") {
			pdf.SetFont("Arial", "B", 10)
			pdf.MultiCell(0, 5, line, "", "L", false)
			pdf.SetFont("Arial", "", 10)
			continue
		}
		pdf.MultiCell(0, 5, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate PDF output")
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}

	s.logger.Debug().Int("pdf_size", buf.Len()).Msg("Policy brief PDF generated")
	return buf.Bytes(), nil
}
