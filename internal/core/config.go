package core

// RuntimeConfig carries the per-run settings the platform hands to a session.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for the first piece sequence (0 = time based)
	Preset  string // Rules preset name, recorded with replays
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Preset:  "normal",
	}
}
