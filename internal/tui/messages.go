package tui

import "time"

// MsgFrame is sent once per host frame and drives the tick loop.
type MsgFrame struct {
	At time.Time
}
