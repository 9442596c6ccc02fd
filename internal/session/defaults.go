package session

import "time"

// Spec-fixed defaults (spec §4.3, §4.6) that are not part of the
// process-wide CLI configuration: every session is built with these
// unless a caller overrides them, but no flag or environment variable
// contracts them.
const (
	DefaultGameDuration        = 300 * time.Second
	DefaultPromotionBonus      = 3 * time.Second
	DefaultBroadcastHistory    = 5
	DefaultMaxFailedBroadcasts = 20
)
