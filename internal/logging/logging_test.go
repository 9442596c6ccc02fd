package logging

import "testing"

func TestLogfDoesNotPanicWhenDisabled(t *testing.T) {
	Logf(false, "unused %d", 1)
}

func TestLogfDoesNotPanicWhenEnabled(t *testing.T) {
	Logf(true, "value %d", 1)
}
