package models

// Resolution records which side of a conflict was kept.
type Resolution string

const (
	ResolutionServerWon Resolution = "server-won"
	ResolutionLocalWon  Resolution = "local-won"
)

// Conflict is produced when both sides hold a version of the same id and
// their timestamps differ by more than the configured sensitivity threshold.
// It references exactly the two competing versions and the resolution that
// was actually applied to the merged set.
type Conflict struct {
	Local      *CachedRecord `json:"localVersion"`
	Server     *CachedRecord `json:"serverVersion"`
	ID         string        `json:"id"`
	Resolution Resolution    `json:"resolution"`
}
