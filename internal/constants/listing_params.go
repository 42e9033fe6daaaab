package constants

// Listing request defaults shared by the orchestrator and the HTTP surface.
const (
	// DefaultPageLimit is the page size of every listing fetch.
	DefaultPageLimit = 10

	// DefaultFeaturedLimit is the size of the landing-page featured strip.
	DefaultFeaturedLimit = 6
)
