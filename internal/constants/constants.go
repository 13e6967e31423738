package constants

import "time"

// Context keys
const (
	ContextKeyIdentity = "identity"
)

// Password rules
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// One-time passwords for the reset flow
const (
	OTPLength = 6
	OTPTTL    = 10 * time.Minute
)

// Date layout used for meeting dates in requests and responses
const (
	DateLayout = "2006-01-02"
)
