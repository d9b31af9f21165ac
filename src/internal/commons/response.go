package commons

// Reason classifies a failed operation so callers can render a user-facing
// message without inspecting wrapped errors.
type Reason string

const (
	ReasonValidation     Reason = "VALIDATION_ERROR"
	ReasonNotFound       Reason = "NOT_FOUND"
	ReasonBusinessRule   Reason = "BUSINESS_RULE_VIOLATION"
	ReasonPersistence    Reason = "PERSISTENCE_ERROR"
	ReasonPartialFailure Reason = "PARTIAL_FAILURE"
)

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Reason  Reason   `json:"reason,omitempty"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](reason Reason, message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Reason:  reason,
		Errors:  errors,
	}
}
