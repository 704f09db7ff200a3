package dxt1

import "errors"

// ErrorCode classifies failures of the image-level API. The per-block
// compression hot path never fails; only the surface entry points that
// validate caller-provided buffers return errors.
type ErrorCode uint32

const (
	// Success means no error.
	Success ErrorCode = 0

	// ErrBadParam means an argument violated the input contract.
	ErrBadParam ErrorCode = 1

	// ErrBadImageSize means the image dimensions are non-positive or do
	// not match the pixel buffer length.
	ErrBadImageSize ErrorCode = 2

	// ErrBufferTooSmall means a caller-provided output buffer cannot hold
	// the compressed payload.
	ErrBufferTooSmall ErrorCode = 3
)

// Error is a typed error carrying an ErrorCode.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	return "dxt1: error"
}

// ErrorCodeOf returns the code for err, or Success for nil. Non-*Error
// errors report ErrBadParam as a conservative fallback.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrBadParam
}

func newError(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
