package slackapi

// Phase annotates an APIError with the stage of the exchange that failed.
type Phase string

const (
	// PhaseSendMessage covers transport and decode failures while posting a message.
	PhaseSendMessage Phase = "Error when attempting to send message to Slack thread"
	// PhaseUploadFile covers transport and decode failures during the upload flow.
	PhaseUploadFile Phase = "Error when attempting to upload file to Slack"
	// PhaseAPIReported covers failures the service itself reports via ok=false.
	PhaseAPIReported Phase = "Error reported by Slack API"
	// PhaseParseResponse covers responses that decode but are missing required fields.
	PhaseParseResponse Phase = "Error when parsing Slack API response"
)

// fallback message when Slack reports ok=false without an error field.
const unknownAPIError = "unknown error"

// APIError is the single error kind surfaced by this package. The two tiers
// (transport/parse vs. API-reported) share the type and are distinguished by
// Phase.
type APIError struct {
	Phase   Phase
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return string(e.Phase) + ": " + e.Message
	case e.Err != nil:
		return string(e.Phase) + ": " + e.Err.Error()
	}
	return string(e.Phase)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// apiReported builds the API-reported tier error from the service's own
// error field.
func apiReported(errField string) *APIError {
	if errField == "" {
		errField = unknownAPIError
	}
	return &APIError{Phase: PhaseAPIReported, Message: errField}
}
