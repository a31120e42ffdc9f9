package trackselect

// Default selection parameters
const (
	DefaultDecisionRate = 24  // Decision ticks per second
	DefaultThreshold    = 5   // Consecutive wins a challenger needs to take over
	DefaultExceedsBy    = 4.0 // Multiplier applied to the incumbent's magnitude
)

// Limits
const (
	minDecisionRate = 1   // At least one tick per second
	minThreshold    = 1   // Threshold 1 disables debouncing
	minExceedsBy    = 1.0 // Values below 1 would favour challengers
	minChannels     = 1
	maxChannels     = 256 // Maximum supported channel count
)

// Track indices
const (
	firstTrack   = 0 // Initial incumbent and candidate
	firstChannel = 0 // Only channel 0 is read when downsampling
)
