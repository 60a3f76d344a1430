package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrDecode is returned when an envelope payload is not valid base64 or
// does not decode to UTF-8 text.
var ErrDecode = errors.New("invalid envelope payload")

// DecodeError describes why an envelope payload could not be decoded.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrDecode, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrDecode, e.Reason)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDecode, e.Err}
	}
	return []error{ErrDecode}
}

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

// Decode base64-decodes an envelope payload into its JSON text. Both the
// standard and URL-safe alphabets are accepted, padded or not. A blank
// payload is rejected even though it is valid base64: an envelope always
// carries a request document. The JSON itself is not validated here.
func Decode(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", &DecodeError{Reason: "empty payload"}
	}

	var firstErr error
	for _, enc := range encodings {
		raw, err := enc.DecodeString(payload)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !utf8.Valid(raw) {
			return "", &DecodeError{Reason: "payload is not valid UTF-8"}
		}
		return string(raw), nil
	}
	return "", &DecodeError{Reason: "payload is not valid base64", Err: firstErr}
}

// Encode serializes v to JSON and wraps it in a RequestDto.
func Encode(version string, v any) (RequestDto, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return RequestDto{}, fmt.Errorf("could not marshal request: %w", err)
	}
	return RequestDto{
		Version: version,
		Request: base64.StdEncoding.EncodeToString(body),
	}, nil
}
