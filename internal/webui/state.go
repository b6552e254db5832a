package webui

import (
	"github.com/google/uuid"

	"github.com/BerylCAtieno/career-risk-agent/internal/models"
)

// GenericError is shown when the server gives no usable message.
const GenericError = "Something went wrong. Please try again."

type FormStatus string

const (
	FormIdle       FormStatus = "idle"
	FormSubmitting FormStatus = "submitting"
	FormSuccess    FormStatus = "success"
	FormError      FormStatus = "error"
)

// Form tracks the assessment form through one submission. Each POST owns
// its Form; the browser allows one form navigation at a time.
type Form struct {
	Status  FormStatus
	Profile models.Profile
	Result  *models.RiskAnalysis
	Error   string
}

// Submit moves to submitting and clears the previous outcome.
func (f *Form) Submit(p models.Profile) {
	f.Status = FormSubmitting
	f.Profile = p
	f.Result = nil
	f.Error = ""
}

func (f *Form) Succeed(r models.RiskAnalysis) {
	if f.Status != FormSubmitting {
		return
	}
	f.Status = FormSuccess
	f.Result = &r
}

// Fail records msg, or GenericError when msg is empty.
func (f *Form) Fail(msg string) {
	if f.Status != FormSubmitting {
		return
	}
	if msg == "" {
		msg = GenericError
	}
	f.Status = FormError
	f.Error = msg
}

type SectionStatus string

const (
	SectionIdle    SectionStatus = "idle"
	SectionLoading SectionStatus = "loading"
	SectionContent SectionStatus = "content"
	SectionError   SectionStatus = "error"
)

// SectionState is one premium-insight panel. Each load is tagged with the
// X-Request-ID of the page request that started it; results for any other
// id are stale and dropped.
type SectionState struct {
	Name      string
	Category  string
	Status    SectionStatus
	RequestID string
	Content   any
	Error     string
}

// Begin starts loading category under requestID and returns it. An empty
// requestID gets a fresh one.
func (s *SectionState) Begin(category, requestID string) string {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	s.Category = category
	s.Status = SectionLoading
	s.RequestID = requestID
	s.Content = nil
	s.Error = ""
	return s.RequestID
}

// Resolve applies content if requestID is current. It reports whether the
// result was applied.
func (s *SectionState) Resolve(requestID string, content any) bool {
	if s.Status != SectionLoading || requestID != s.RequestID {
		return false
	}
	s.Status = SectionContent
	s.Content = content
	return true
}

// Reject records a failure if requestID is current.
func (s *SectionState) Reject(requestID, msg string) bool {
	if s.Status != SectionLoading || requestID != s.RequestID {
		return false
	}
	if msg == "" {
		msg = GenericError
	}
	s.Status = SectionError
	s.Error = msg
	return true
}
