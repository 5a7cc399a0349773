package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Report is the YAML document written by --report
type Report struct {
	Counts    ReportCounts    `yaml:"counts"`
	Database  string          `yaml:"database"`
	DryRun    bool            `yaml:"dry_run"`
	Duration  string          `yaml:"duration"`
	Error     string          `yaml:"error,omitempty"`
	Skipped   []SkippedRecord `yaml:"skipped,omitempty"`
	Source    string          `yaml:"source"`
	StartedAt time.Time       `yaml:"started_at"`
	Warnings  int             `yaml:"warnings"`
}

// ReportCounts holds the per-entity counts of a run
type ReportCounts struct {
	Decks       int `yaml:"decks"`
	History     int `yaml:"history"`
	Notes       int `yaml:"notes"`
	Sessions    int `yaml:"sessions"`
	Settings    int `yaml:"settings"`
	Suggestions int `yaml:"suggestions"`
}

// NewReport builds a report from a run summary and its error, if any
func NewReport(summary Summary, source, database string, dryRun bool, runErr error) Report {
	report := Report{
		Counts: ReportCounts{
			Decks:       summary.Decks,
			History:     summary.History,
			Notes:       summary.Notes,
			Sessions:    summary.Sessions,
			Settings:    summary.Settings,
			Suggestions: summary.Suggestions,
		},
		Database:  database,
		DryRun:    dryRun,
		Duration:  summary.Duration.Round(time.Millisecond).String(),
		Skipped:   summary.Skipped,
		Source:    source,
		StartedAt: summary.StartedAt,
		Warnings:  summary.Warnings,
	}
	if runErr != nil {
		report.Error = runErr.Error()
	}
	return report
}

// WriteReport writes report as YAML to path
func WriteReport(path string, report Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
