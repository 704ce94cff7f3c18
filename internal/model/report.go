package model

import "time"

// RunReport accumulates the outcome of one batch extraction run.
// Individual sentence failures land here instead of aborting the run.
type RunReport struct {
	StartedAt           time.Time `json:"started_at"`
	FinishedAt          time.Time `json:"finished_at"`
	SentencesProcessed  int       `json:"sentences_processed"`
	CandidatesExtracted int       `json:"candidates_extracted"`
	MentionsCreated     int       `json:"mentions_created"`
	Verified            int       `json:"verified"`
	Rejected            int       `json:"rejected"`
	Degraded            int       `json:"degraded"` // Accepted unverified after transient failures
	Failures            []Failure `json:"failures,omitempty"`
}

// Failure records a non-fatal error attributed to one sentence or place.
type Failure struct {
	SentenceID string `json:"sentence_id,omitempty"`
	Place      string `json:"place,omitempty"`
	Stage      string `json:"stage"` // extract, verify, geocode, persist
	Error      string `json:"error"`
}

// GeocodeReport summarizes one batch geocoding pass.
type GeocodeReport struct {
	Processed int `json:"processed"`
	Resolved  int `json:"resolved"`
	NotFound  int `json:"not_found"`
	Errors    int `json:"errors"`
}
