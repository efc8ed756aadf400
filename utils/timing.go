package utils

import "time"

// EnforceDelay blocks the calling goroutine until at least minDelay has
// elapsed since start. It returns immediately when that time has passed.
func EnforceDelay(start time.Time, minDelay time.Duration) {
	if remaining := minDelay - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
}
