// Package apperr defines the error kinds reported at the action boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide how to present it.
type Kind int

const (
	KindUnknown Kind = iota
	KindSizeLimitExceeded
	KindUnsupportedFormat
	KindTransport
	KindRemoteAPI
	KindPrecondition
	KindFileIO
)

func (k Kind) String() string {
	switch k {
	case KindSizeLimitExceeded:
		return "SizeLimitExceeded"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindTransport:
		return "TransportError"
	case KindRemoteAPI:
		return "RemoteApiError"
	case KindPrecondition:
		return "PreconditionError"
	case KindFileIO:
		return "FileIOError"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by the clients and the controller.
// Code is only set for KindRemoteAPI and carries the vendor errorCode.
type Error struct {
	Kind Kind
	Op   string
	Code string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Code != "" {
		if msg == "" {
			msg = fmt.Sprintf("vendor error code %s", e.Code)
		} else {
			msg = fmt.Sprintf("%s (vendor error code %s)", msg, e.Code)
		}
	}
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// CodeOf returns the vendor error code carried by err, if any.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// SizeLimit reports a file larger than limit bytes.
func SizeLimit(op string, size, limit int64) error {
	return &Error{Kind: KindSizeLimitExceeded, Op: op, Msg: fmt.Sprintf("file is %d bytes, limit is %d bytes", size, limit)}
}

// UnsupportedFormat reports an image extension other than PNG or JPG.
func UnsupportedFormat(op, ext string) error {
	return &Error{Kind: KindUnsupportedFormat, Op: op, Msg: fmt.Sprintf("unsupported image format %q, only PNG or JPG are accepted", ext)}
}

// Transport wraps a network failure or a non-2xx HTTP status.
func Transport(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Msg: "request failed", Err: err}
}

// Remote carries a vendor errorCode other than success.
func Remote(op, code, msg string) error {
	return &Error{Kind: KindRemoteAPI, Op: op, Code: code, Msg: msg}
}

// Precondition reports an action that is not allowed in the current state.
func Precondition(op, msg string) error {
	return &Error{Kind: KindPrecondition, Op: op, Msg: msg}
}

// FileIO wraps a local read or write failure.
func FileIO(op string, err error) error {
	return &Error{Kind: KindFileIO, Op: op, Err: err}
}
