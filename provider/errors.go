package provider

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable identifier of a dispatcher error.
type ErrorCode string

const (
	// InvalidRequestBody: the envelope is not valid base64 or UTF-8.
	InvalidRequestBody ErrorCode = "INVALID_REQUEST_BODY"
	// BioSDKLibException: the engine failed, or the request could not be
	// materialized for it.
	BioSDKLibException ErrorCode = "BIOSDK_LIB_EXCEPTION"
	// UncheckedException: extract-template returned a record without segments.
	UncheckedException ErrorCode = "UNCHECKED_EXCEPTION"
	// UnsupportedVersion: the envelope pins a spec version this process does not serve.
	UnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
	// NoProviderFound: no engine is available to compose a provider with.
	NoProviderFound ErrorCode = "NO_BIOSDK_PROVIDER_FOUND"
)

// Message returns the message template of the code.
func (c ErrorCode) Message() string {
	switch c {
	case InvalidRequestBody:
		return "Unable to parse request body"
	case BioSDKLibException:
		return "Exception thrown by BioSDK library"
	case UnsupportedVersion:
		return "Unsupported version"
	case NoProviderFound:
		return "No BioSDK service provider found"
	default:
		return string(c)
	}
}

// Error is the only error type returned across the dispatcher boundary.
// The cause is flattened into Message; its type is not kept.
type Error struct {
	Code    ErrorCode
	Message string
}

func newError(code ErrorCode, cause error) *Error {
	msg := code.Message()
	if cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, cause.Error())
	}
	return &Error{Code: code, Message: msg}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode carried by err.
func CodeOf(err error) (ErrorCode, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Code, true
	}
	return "", false
}
