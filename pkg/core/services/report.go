package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/internal/config"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/clients/sheetsclient"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
)

// ReportPublisher writes a report table to a spreadsheet
type ReportPublisher interface {
	PublishReport(spreadsheetID string, report *sheetsclient.Report) error
}

var complianceHeader = []string{
	"Provider", "Contract_Type", "Shift_Preference",
	"Total_Shifts", "Total_Limit", "Total_Remaining",
	"Weekend_Shifts", "Weekend_Limit", "Weekend_Remaining",
	"MD1_Shifts", "MD1_Limit", "MD1_Remaining",
	"MD2_Shifts", "MD2_Limit", "MD2_Remaining",
	"PM_Shifts", "PM_Limit", "PM_Remaining",
}

var shiftCountHeader = []string{
	"Provider",
	"MD1", "MD1_Weekday", "MD1_Weekend",
	"MD2", "MD2_Weekday", "MD2_Weekend",
	"PM", "PM_Weekday", "PM_Weekend",
	"Total_Shifts", "Total_Weekend_Shifts",
}

// BuildReports renders the snapshot's compliance and shift-count tables
func BuildReports(snap *Snapshot, generatedAt time.Time) []*sheetsclient.Report {
	note := fmt.Sprintf("Generated %s for %s", generatedAt.Format("2006-01-02 15:04"), snap.Period.Label())

	compliance := &sheetsclient.Report{
		Title:  "Compliance - " + snap.Period.Label(),
		Note:   note,
		Header: complianceHeader,
		Rows:   make([][]interface{}, 0, len(snap.Compliance)),
	}
	for _, r := range snap.Compliance {
		compliance.Rows = append(compliance.Rows, complianceRow(r))
	}

	counts := &sheetsclient.Report{
		Title:  "Shift Counts - " + snap.Period.Label(),
		Note:   note,
		Header: shiftCountHeader,
		Rows:   make([][]interface{}, 0, len(snap.ShiftCounts)),
	}
	for _, c := range snap.ShiftCounts {
		counts.Rows = append(counts.Rows, []interface{}{
			c.Provider,
			c.MD1, c.MD1Weekday, c.MD1Weekend,
			c.MD2, c.MD2Weekday, c.MD2Weekend,
			c.PM, c.PMWeekday, c.PMWeekend,
			c.TotalShifts, c.TotalWeekendShifts,
		})
	}

	return []*sheetsclient.Report{compliance, counts}
}

func complianceRow(r analytics.ComplianceReport) []interface{} {
	return []interface{}{
		r.Provider, r.ContractType, r.ShiftPreference,
		r.TotalShifts, r.TotalLimit.String(), r.TotalRemaining.String(),
		r.WeekendShifts, r.WeekendLimit.String(), r.WeekendRemaining.String(),
		r.MD1Shifts, r.MD1Limit.String(), r.MD1Remaining.String(),
		r.MD2Shifts, r.MD2Limit.String(), r.MD2Remaining.String(),
		r.PMShifts, r.PMLimit.String(), r.PMRemaining.String(),
	}
}

// PublishReport writes the compliance and shift-count tables to the report
// sheet, one tab per table. Re-running for the same period overwrites the tabs.
func PublishReport(ctx context.Context, publisher ReportPublisher, cfg *config.Config, snap *Snapshot, logger *zap.Logger) ([]string, error) {
	if cfg.ReportSheetID == "" {
		return nil, fmt.Errorf("reportSheetID is not configured")
	}

	var published []string
	for _, report := range BuildReports(snap, time.Now()) {
		if err := ctx.Err(); err != nil {
			return published, err
		}

		logger.Debug("Publishing report", zap.String("tab", report.Title), zap.Int("rows", len(report.Rows)))
		if err := publisher.PublishReport(cfg.ReportSheetID, report); err != nil {
			return published, fmt.Errorf("failed to publish %q: %w", report.Title, err)
		}
		published = append(published, report.Title)
	}

	logger.Info("Reports published",
		zap.String("spreadsheet_id", cfg.ReportSheetID),
		zap.Strings("tabs", published))

	return published, nil
}
