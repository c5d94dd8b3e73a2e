package usecase

import (
	"strings"

	"interview-hub/internal/domain"
)

type noopRecorder struct{}

func (noopRecorder) RecordAction(string, domain.ResultCode) {}
func (noopRecorder) RecordResolution(bool)                  {}

func recorderOrNoop(r domain.OutcomeRecorder) domain.OutcomeRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
