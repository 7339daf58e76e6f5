package metrics

var (
	// NodeCount is the gauge of linked index nodes
	NodeCount = "aoi_nodes"
	// EntityCount is the gauge of entities in a space
	EntityCount = "aoi_entities"
	// SwapCount counts adjacent swaps, tagged by axis
	SwapCount = "aoi_swaps"
	// UpdateCount counts node updates
	UpdateCount = "aoi_updates"
	// InsertCount counts node inserts
	InsertCount = "aoi_inserts"
	// RemoveCount counts node removals
	RemoveCount = "aoi_removes"
	// ReleaseCount counts released node slots
	ReleaseCount = "aoi_releases"
	// TickTime is the summary of space tick durations in milliseconds
	TickTime = "aoi_tick_time"
)
