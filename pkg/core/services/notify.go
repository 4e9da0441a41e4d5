package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/model"
)

// EmailSender delivers a plain-text email
type EmailSender interface {
	SendEmail(to, subject, body string) error
}

// ComplianceBreach is one limit a provider has gone past
type ComplianceBreach struct {
	Provider string
	Limit    string
	Over     int
}

// ComplianceBreaches lists every negative remaining value in the snapshot's compliance table
func ComplianceBreaches(snap *Snapshot) []ComplianceBreach {
	var breaches []ComplianceBreach
	for _, r := range snap.Compliance {
		for _, limit := range []struct {
			name      string
			remaining model.Remaining
		}{
			{"total", r.TotalRemaining},
			{"weekend", r.WeekendRemaining},
			{string(model.ShiftMD1), r.MD1Remaining},
			{string(model.ShiftMD2), r.MD2Remaining},
			{string(model.ShiftPM), r.PMRemaining},
		} {
			if v, ok := limit.remaining.Value(); ok && v < 0 {
				breaches = append(breaches, ComplianceBreach{Provider: r.Provider, Limit: limit.name, Over: -v})
			}
		}
	}
	return breaches
}

// ComplianceEmail renders the subject and body of a compliance summary
func ComplianceEmail(snap *Snapshot, breaches []ComplianceBreach) (string, string) {
	label := snap.Period.Label()
	if len(breaches) == 0 {
		return fmt.Sprintf("Compliance - %s: all providers within contract", label),
			fmt.Sprintf("No provider exceeded a contract limit in %s.\n", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Contract limits exceeded in %s:\n\n", label)
	for _, br := range breaches {
		fmt.Fprintf(&b, "- %s: %d over %s limit\n", br.Provider, br.Over, br.Limit)
	}
	fmt.Fprintf(&b, "\n%s\n", uncontractedNote(snap.Compliance))

	return fmt.Sprintf("Compliance - %s: %d limit(s) exceeded", label, len(breaches)), b.String()
}

func uncontractedNote(rows []analytics.ComplianceReport) string {
	var missing int
	for _, r := range rows {
		if !r.HasContract {
			missing++
		}
	}
	return fmt.Sprintf("%d of %d scheduled providers have no contract on file.", missing, len(rows))
}

// NotifyCompliance emails the compliance summary to each recipient and returns how many were sent
func NotifyCompliance(ctx context.Context, sender EmailSender, recipients []string, snap *Snapshot, logger *zap.Logger) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}

	breaches := ComplianceBreaches(snap)
	subject, body := ComplianceEmail(snap, breaches)

	sent := 0
	for _, to := range recipients {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := sender.SendEmail(to, subject, body); err != nil {
			return sent, fmt.Errorf("failed to email %s: %w", to, err)
		}
		sent++
		logger.Info("Sent compliance summary", zap.String("to", to), zap.Int("breaches", len(breaches)))
	}

	return sent, nil
}
