package app

import (
	"context"
	"fmt"
	"strings"

	"kuesioner/internal"
	"kuesioner/internal/errors"
	"kuesioner/ports"
)

// SubmissionService checks required fields and forwards submissions to the sheet
type SubmissionService struct {
	sink     ports.SubmissionSink
	required []string
	logger   *internal.Logger
}

// NewSubmissionService creates a submission service. Fields named in required must be non-blank.
func NewSubmissionService(sink ports.SubmissionSink, required []string, logger *internal.Logger) *SubmissionService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SubmissionService{
		sink:     sink,
		required: required,
		logger:   logger,
	}
}

// MissingFields lists required fields that are absent or blank, in configured order
func (s *SubmissionService) MissingFields(fields map[string]string) []string {
	var missing []string
	for _, name := range s.required {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Submit validates fields and forwards them. Blank required fields give INVALID_INPUT;
// a rejected or failed forward gives EXTERNAL_SERVICE_ERROR.
func (s *SubmissionService) Submit(ctx context.Context, fields map[string]string) (ports.SubmitResult, error) {
	if missing := s.MissingFields(fields); len(missing) > 0 {
		return ports.SubmitResult{}, errors.InvalidInput(
			fmt.Sprintf("required fields are empty: %s", strings.Join(missing, ", ")))
	}

	result := s.sink.Submit(ctx, ports.Submission(fields))
	if !result.Success {
		s.logger.Error("[Submit] Forwarding failed: %s", result.Reason)
		return result, errors.ExternalServiceError("response sheet", fmt.Errorf("%s", result.Reason))
	}

	s.logger.Info("[Submit] Submission stored")
	return result, nil
}
