package health

import "errors"

var (
	// ErrCheckFailed is returned when one or more health checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout is returned when the run deadline expired before every check finished.
	ErrCheckTimeout = errors.New("health: check timeout")
)

// CheckError is the failure of one named check, as joined into the error of [Run].
type CheckError struct {
	Name string
	Err  error
}

func (e *CheckError) Error() string { return e.Name + ": " + e.Err.Error() }

func (e *CheckError) Unwrap() error { return e.Err }

// FailedChecks lists the names of the checks that failed in err, in the
// order [Run] reported them.
func FailedChecks(err error) []string {
	var names []string
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case *CheckError:
			names = append(names, e.Name)
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		}
	}
	walk(err)
	return names
}
