package error

// RequestErrorCode defines error codes for transport-level failures.
type RequestErrorCode string

const (
	ErrCodeRateLimited RequestErrorCode = "REQ-010001"
)
