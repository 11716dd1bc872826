package redis

import "errors"

var (
	ErrUnsupportedTopology = errors.New("redis: unsupported topology")
	ErrInvalidMode         = errors.New("redis: invalid execution mode")
	ErrInvalidOption       = errors.New("redis: invalid connection option")
	ErrHealthcheckFailed   = errors.New("redis: healthcheck failed")
)
