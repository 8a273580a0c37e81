package ports

import (
	"context"
	"fmt"
	"time"

	"kuesioner/domain/survey"
	"kuesioner/internal/errors"
)

// TableSource supplies the current response sheet
type TableSource interface {
	FetchTable(ctx context.Context) FetchResult
}

// SubmissionSink accepts one questionnaire submission
type SubmissionSink interface {
	Submit(ctx context.Context, submission Submission) SubmitResult
}

// FailureKind categorises why a fetch produced no table
type FailureKind string

const (
	FailureTransport FailureKind = "transport" // request could not be made or completed
	FailureStatus    FailureKind = "status"    // endpoint answered with a non-200 status
	FailureDecode    FailureKind = "decode"    // body was not valid JSON
	FailureShape     FailureKind = "shape"     // JSON was not an array of arrays
)

// FetchFailure explains a failed fetch
type FetchFailure struct {
	Kind       FailureKind
	StatusCode int
	Message    string
}

func (f FetchFailure) String() string {
	if f.Kind == FailureStatus {
		return fmt.Sprintf("%s (%d): %s", f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// FetchMetadata contains information about a completed fetch
type FetchMetadata struct {
	URL          string        `json:"url"`
	StatusCode   int           `json:"status_code"`
	ContentType  string        `json:"content_type"`
	Rows         int           `json:"rows"`
	ResponseTime time.Duration `json:"response_time"`
	FetchedAt    time.Time     `json:"fetched_at"`
}

// FetchResult is either a table or the reason there is none
type FetchResult struct {
	Table    survey.RawTable
	Metadata FetchMetadata
	Failure  *FetchFailure
}

// FetchFailed builds a failed result
func FetchFailed(kind FailureKind, statusCode int, message string) FetchResult {
	return FetchResult{Failure: &FetchFailure{Kind: kind, StatusCode: statusCode, Message: message}}
}

// OK reports whether the fetch produced a table
func (r FetchResult) OK() bool {
	return r.Failure == nil
}

// Err returns the failure as an EXTERNAL_SERVICE_ERROR, or nil on success
func (r FetchResult) Err() error {
	if r.Failure == nil {
		return nil
	}
	return errors.ExternalServiceError("response sheet", fmt.Errorf("%s", r.Failure.String()))
}

// TableOrEmpty returns the table, or an empty table when the fetch failed
func (r FetchResult) TableOrEmpty() survey.RawTable {
	if r.Failure != nil || r.Table == nil {
		return survey.RawTable{}
	}
	return r.Table
}

// Submission is one questionnaire's fields keyed by form field name
type Submission map[string]string

// SubmitResult reports whether the sheet accepted a submission
type SubmitResult struct {
	Success    bool
	StatusCode int
	Reason     string
}
