package source

import (
	"context"
	"errors"
	"net"
	"os"
)

var (
	// ErrStatus marks a non-2xx response from the endpoint.
	ErrStatus = errors.New("unexpected status")
	// ErrDecode marks a body that is not a lists payload.
	ErrDecode = errors.New("decode payload")
	// ErrLocation marks an empty or unusable source location.
	ErrLocation = errors.New("invalid source location")
)

// Code is a coarse load failure category used in traces and on the failure
// screen.
type Code string

const (
	CodeUnknown Code = "unknown"
	CodeNetwork Code = "network"
	CodeStatus  Code = "status"
	CodeDecode  Code = "decode"
	CodeIO      Code = "io"
	CodeCancel  Code = "cancel"
)

// Classify maps a load error to a Code using sentinels and standard error
// types only.
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	if errors.Is(err, ErrStatus) {
		return CodeStatus
	}
	if errors.Is(err, ErrDecode) {
		return CodeDecode
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return CodeNetwork
	}
	return CodeUnknown
}
