// Package report produces the downloadable outputs: the delimited
// table export and the policy brief in text and PDF form.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vistara-ai/vistara/internal/models"
)

// csvHeader lists every source, derived and annotation column of the
// table, in pipeline order.
var csvHeader = []string{
	"state", "district", "date",
	"bio_age_5_17", "bio_age_17_",
	"demo_age_5_17", "demo_age_17_",
	"age_0_5", "age_5_17", "age_18_greater",
	"total_bio_updates", "total_demo_updates", "total_updates",
	"total_enrolments", "prev_month_updates",
	"velocity", "divergence_ratio", "migration_index",
	"anomaly_label", "anomaly_score", "risk_level",
}

// WriteCSV streams the annotated table as a delimited export with all
// derived and annotated columns present.
func WriteCSV(w io.Writer, rows []*models.RegionMonth) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.State,
			row.District,
			row.Date.Format("2006-01"),
			formatFloat(row.BioAge5To17),
			formatFloat(row.BioAge17Up),
			formatFloat(row.DemoAge5To17),
			formatFloat(row.DemoAge17Up),
			formatFloat(row.EnrolAge0To5),
			formatFloat(row.EnrolAge5To17),
			formatFloat(row.EnrolAge18Up),
			formatFloat(row.TotalBioUpdates),
			formatFloat(row.TotalDemoUpdates),
			formatFloat(row.TotalUpdates),
			formatFloat(row.TotalEnrolments),
			formatFloat(row.PrevMonthUpdates),
			formatFloat(row.Velocity),
			formatFloat(row.DivergenceRatio),
			formatFloat(row.MigrationIndex),
			strconv.Itoa(row.AnomalyLabel),
			formatFloat(row.AnomalyScore),
			string(row.RiskLevel),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
