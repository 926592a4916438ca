package common

const (
	// Gravity is the magnitude of world gravity in m/s².
	Gravity = 9.81

	TickRate  = 60
	FixedStep = 1.0 / TickRate
	// MaxTicksPerFrame bounds how far the fixed cadence may catch up after a
	// slow frame.
	MaxTicksPerFrame = 5

	// PixelsPerMeter scales the sandbox's side view.
	PixelsPerMeter = 32.0

	ScreenWidth  = 1280
	ScreenHeight = 720

	// KillPlane is the height below which a character is considered lost.
	KillPlane = -50.0
)
