package config

import "time"

// Session timing for the terminal and SSH frontends.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show the shutdown notice before disconnecting
	MaxUsernameLength      = 16  // Maximum display length for usernames
)

// Terminal render area. The field is drawn at most this large, centred when
// the terminal is bigger.
const (
	MaxRenderCols = 96
	MaxRenderRows = 56
	HUDCols       = 24 // Side panel next to the field
)

// EnvOptionsFile names the environment variable holding the options file path.
const EnvOptionsFile = "DANMAKU_OPTIONS"

// AppName names the per-user data directory used by Store.
const AppName = "danmaku"
