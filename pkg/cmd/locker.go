package cmd

import (
	"fmt"

	"github.com/courseloom/courseloom/pkg/lock"
)

// NewLocker returns a Redis-backed locker when a URL is given, otherwise an
// in-process one. Single-instance deployments do not need Redis.
func NewLocker(redisURL string) lock.Locker {
	if redisURL == "" {
		return lock.NewMemoryLocker()
	}

	locker, err := lock.NewRedisLocker(redisURL)
	if err != nil {
		panic(fmt.Errorf("failed to create Redis locker: %w", err))
	}

	return locker
}
