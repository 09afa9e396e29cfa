package core

// RuntimeConfig contains the terminal and clock settings of one UI session.
type RuntimeConfig struct {
	ScreenW    int     // Screen width in characters
	ScreenH    int     // Screen height in characters
	TickRate   int     // UI frames per second (default 60)
	MaxDeltaMs float64 // Largest frame gap fed to the simulation
	Seed       uint32  // Generation seed, used when FixedSeed is set
	FixedSeed  bool    // Otherwise every game draws a fresh seed
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		MaxDeltaMs: 250,
	}
}
