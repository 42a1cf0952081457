package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ErrorRecord is one row of the error report.
type ErrorRecord struct {
	File    string `json:"file"`
	Reason  string `json:"reason"`
	Remarks string `json:"remarks,omitempty"`
}

// RunSummary counts the outcomes of one batch run.
type RunSummary struct {
	RunID          uuid.UUID            `json:"run_id"`
	ProcessingDate time.Time            `json:"processing_date"`
	StartedAt      time.Time            `json:"started_at"`
	FinishedAt     time.Time            `json:"finished_at"`
	Input          int                  `json:"input"`
	Success        int                  `json:"success"`
	Errors         int                  `json:"errors"`
	ByState        map[OutcomeState]int `json:"by_state"`
	ReportURL      string               `json:"report_url,omitempty"`
	ErrorReportURL string               `json:"error_report_url,omitempty"`
}

// ExtractionRun is the persisted record of a batch run.
type ExtractionRun struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ProcessingDate time.Time  `db:"processing_date" json:"processing_date"`
	Status         RunStatus  `db:"status" json:"status"`
	InputCount     int        `db:"input_count" json:"input_count"`
	SuccessCount   int        `db:"success_count" json:"success_count"`
	ErrorCount     int        `db:"error_count" json:"error_count"`
	ReportLocation string     `db:"report_location" json:"report_location"`
	StartedAt      time.Time  `db:"started_at" json:"started_at"`
	FinishedAt     *time.Time `db:"finished_at" json:"finished_at"`
}

// ExtractionOutcome is the persisted terminal state of one document within a run.
// Position is the document's zero-based input index. Sequence is its SAIBA serial number,
// zero for documents that did not succeed.
type ExtractionOutcome struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	RunID     uuid.UUID       `db:"run_id" json:"run_id"`
	Position  int             `db:"position" json:"position"`
	Sequence  int             `db:"sequence" json:"sequence"`
	File      string          `db:"file" json:"file"`
	State     OutcomeState    `db:"state" json:"state"`
	Variant   Variant         `db:"variant" json:"variant"`
	Reason    string          `db:"reason" json:"reason"`
	Remarks   string          `db:"remarks" json:"remarks"`
	Fields    json.RawMessage `db:"fields" json:"fields"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
