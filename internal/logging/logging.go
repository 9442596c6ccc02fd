// Package logging is the debug-gated diagnostic logger every other
// package calls into, grounded directly on the teacher's logf helper.
package logging

import (
	"log"
	"time"
)

// logDate is the timestamp layout the teacher's log lines use.
const logDate = "2006-01-02T15:04:05.000-07:00"

// Logf writes a timestamped diagnostic line when debug is true, and is
// a no-op otherwise.
func Logf(debug bool, format string, args ...any) {
	if !debug {
		return
	}
	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}
