package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/akbowen/ru-health-hack-2025-sub000/pkg/core/analytics"
)

var ErrProviderNotFound = errors.New("provider not found")

func providerNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrProviderNotFound, name)
}

// knownProvider matches a provider by display name or ID
func (s *Snapshot) knownProvider(name string) bool {
	if _, ok := s.Schedule.ProviderByName(name); ok {
		return true
	}
	for _, p := range s.Schedule.Providers {
		if p.ID == name {
			return true
		}
	}
	return false
}

// ProviderConsecutive reports a provider's runs of consecutive working days
func ProviderConsecutive(snap *Snapshot, provider string) (analytics.ConsecutiveResult, error) {
	if !snap.knownProvider(provider) {
		return analytics.ConsecutiveResult{}, providerNotFound(provider)
	}
	return analytics.AnalyzeConsecutive(snap.Entries, provider, snap.TotalDays()), nil
}

// ProviderSatisfaction scores one provider. Providers with no counted shifts
// in the period are reported as not found.
func ProviderSatisfaction(snap *Snapshot, provider string) (analytics.SatisfactionScore, error) {
	count, ok := analytics.FindShiftCount(snap.ShiftCounts, provider)
	if !ok {
		return analytics.SatisfactionScore{}, providerNotFound(provider)
	}

	in := analytics.SatisfactionInput{
		ShiftCount:  count,
		Consecutive: analytics.AnalyzeConsecutive(snap.Entries, count.Provider, snap.TotalDays()),
	}
	if v, ok := analytics.FindVolume(snap.Volume, count.Provider); ok {
		in.Volume = &v
	}
	if c, ok := analytics.FindCompliance(snap.Compliance, count.Provider); ok {
		in.Compliance = &c
	}
	if h, ok := snap.Happiness(count.Provider); ok {
		in.Happiness = &h
	}

	return analytics.CalculateSatisfactionScore(in), nil
}

// SuggestReplacement ranks credentialed providers with capacity to cover a
// cancelled shift
func SuggestReplacement(snap *Snapshot, facility, shiftType string, date time.Time) ([]analytics.ReplacementProvider, error) {
	q, err := analytics.NewReplacementQuery(facility, shiftType, date, snap.WeekendRule)
	if err != nil {
		return nil, err
	}
	return analytics.RankReplacements(q, snap.Reference.Credentials, snap.Compliance, snap.Volume)
}

// ProviderViolations lists the audit findings for one provider, or for everyone
// when provider is empty
func ProviderViolations(snap *Snapshot, provider string) ([]analytics.Violation, error) {
	all := snap.Violations()
	if provider == "" {
		return all, nil
	}
	if !snap.knownProvider(provider) {
		return nil, providerNotFound(provider)
	}

	matched := []analytics.Violation{}
	for _, v := range all {
		if foldProvider(v.Provider) == foldProvider(provider) {
			matched = append(matched, v)
		}
	}
	return matched, nil
}
