package dsn

import (
	"errors"
	"strconv"
)

var (
	ErrURIFormat          = errors.New("dsn: malformed connection URI")
	ErrScheme             = errors.New("dsn: unsupported URI scheme")
	ErrTopologyValidation = errors.New("dsn: topology validation failed")
	ErrMissingServiceName = errors.New("dsn: sentinel URI requires a service name")
)

// Error is returned by Parse and Resolve.
// Kind is one of the package sentinel errors, so callers can match with errors.Is
// and still read the rejected fragment through errors.As.
type Error struct {
	Kind     error
	Fragment string
	Reason   string
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Fragment != "" {
		msg += " (near " + strconv.Quote(e.Fragment) + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func formatErr(fragment, reason string) error {
	return &Error{Kind: ErrURIFormat, Fragment: fragment, Reason: reason}
}

func schemeErr(scheme string) error {
	return &Error{Kind: ErrScheme, Fragment: scheme, Reason: "expected one of redis, rediss, redis+sentinel, redis+cluster"}
}

func topologyErr(fragment, reason string) error {
	return &Error{Kind: ErrTopologyValidation, Fragment: fragment, Reason: reason}
}
