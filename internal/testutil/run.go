package testutil

// DefaultRunID is used by FixedRunGenerator when no ID is given.
const DefaultRunID = "test-run-default"

// FixedRunGenerator returns the same run ID every time.
// It satisfies engine.RunIDGenerator.
//
// A scenario sets the ID in its file:
//
//	run_id: "test-run-00000000-0000-0000-0000-000000000001"
type FixedRunGenerator struct {
	id string
}

// NewFixedRunGenerator creates a generator for id, or DefaultRunID when id
// is empty.
func NewFixedRunGenerator(id string) *FixedRunGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunGenerator{id: id}
}

// Generate returns the fixed ID.
func (g *FixedRunGenerator) Generate() string {
	return g.id
}
