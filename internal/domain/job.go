package domain

import "time"

// Source tags where a record entered the system. The pipeline treats
// all sources the same; the tag survives for audit output.
type Source string

const (
	SourceEmail       Source = "email"
	SourceScrape      Source = "scrape"
	SourceSpreadsheet Source = "spreadsheet"
	SourceManual      Source = "manual"
	SourceUnknown     Source = "unknown"
)

// JobRecord is one normalized posting handed to the pipeline by the
// ingestion layer. The pipeline never mutates it; derived results live
// in ScoreBreakdown.
type JobRecord struct {
	Title       string
	Company     string
	Location    string
	Link        string
	Description string
	Source      Source
	PostedAt    *time.Time
}
