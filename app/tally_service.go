package app

import (
	"context"
	"time"

	"kuesioner/domain/core"
	"kuesioner/domain/survey"
	"kuesioner/internal"
	"kuesioner/ports"
)

// Snapshot is one computed aggregate together with how it was obtained
type Snapshot struct {
	Result survey.AggregateResult `json:"result"`
	// Fetched is false when the sheet could not be read and Result is the zero aggregate.
	Fetched    bool                `json:"fetched"`
	Reason     string              `json:"reason,omitempty"`
	Schema     survey.SchemaReport `json:"schema"`
	ComputedAt time.Time           `json:"computedAt"`
}

// TallyService fetches the response sheet and aggregates it
type TallyService struct {
	source ports.TableSource
	logger *internal.Logger
	clock  core.Clock
}

// NewTallyService creates a tally service reading from source
func NewTallyService(source ports.TableSource, logger *internal.Logger) *TallyService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TallyService{
		source: source,
		logger: logger,
		clock:  core.SystemClock,
	}
}

// WithClock overrides the clock used for ComputedAt
func (s *TallyService) WithClock(clock core.Clock) *TallyService {
	s.clock = clock
	return s
}

// Current fetches a fresh table and aggregates it. A failed fetch is logged and
// yields the zero aggregate.
func (s *TallyService) Current(ctx context.Context) Snapshot {
	fetch := s.source.FetchTable(ctx)
	if !fetch.OK() {
		s.logger.Warn("[Tally] Fetch failed, reporting empty aggregate: %s", fetch.Failure)
		snapshot := s.FromTable(fetch.TableOrEmpty())
		snapshot.Fetched = false
		snapshot.Reason = fetch.Failure.String()
		return snapshot
	}

	snapshot := s.FromTable(fetch.Table)
	snapshot.Fetched = true
	s.logger.Debug("[Tally] %d responses aggregated from %d rows (%s)",
		snapshot.Result.TotalResponses, fetch.Metadata.Rows, fetch.Metadata.ResponseTime)
	return snapshot
}

// FromTable aggregates an already loaded table
func (s *TallyService) FromTable(table survey.RawTable) Snapshot {
	snapshot := Snapshot{
		Result:     survey.Aggregate(table),
		Fetched:    true,
		ComputedAt: s.clock(),
	}

	if header := table.Header(); header != nil {
		snapshot.Schema = survey.InspectHeader(header)
		s.logSchema(snapshot.Schema)
	}
	return snapshot
}

func (s *TallyService) logSchema(report survey.SchemaReport) {
	if len(report.Unknown) > 0 {
		s.logger.Debug("[Tally] Ignoring non-question columns: %v", report.Unknown)
	}
	if !report.Complete() {
		s.logger.Warn("[Tally] Sheet is missing question columns: %v", report.Missing)
	}
}
