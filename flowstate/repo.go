// Package flowstate holds the in-progress state of multi-step auth journeys
// between screen transitions. State here survives navigation but is not
// meant to survive a full restart of the hosting process; the journeys are
// designed to be restarted from step one, not resumed across restarts.
package flowstate

// Repo is the raw key/value storage behind the typed Store. Implementations
// must be safe for concurrent use.
type Repo interface {
	// Set stores or replaces a value
	Set(key, value string) error

	// Get retrieves a value; a missing key returns ErrFlowStateMissing
	Get(key string) (string, error)

	// Delete removes a key; deleting an absent key is not an error
	Delete(key string) error
}
