package core

// RuntimeConfig contains host parameters passed to a game when it is created.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	FPS     int   // Frame callbacks per second delivered by the host
	Seed    int64 // RNG seed, 0 means seed from the clock
}
