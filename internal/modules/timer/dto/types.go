package dto

import (
	"time"

	"focusdash/internal/modules/timer/domain"
)

// Snapshot is a read-only view of a session timer for renderers.
type Snapshot struct {
	SessionID string
	Kind      string
	Mode      domain.Mode
	State     domain.State
	Duration  time.Duration
	Elapsed   time.Duration
	Remaining time.Duration
}
