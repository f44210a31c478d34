// Package foundation provides the use cases of the foundation registry.
// It is the only gateway to persistence: every write is validated first, and
// storage outcomes are translated into domain errors (entity.Error).
package foundation

// Client-facing messages.
const (
	MsgConflict = "a foundation with this tax ID already exists"
	MsgNotFound = "foundation not found"
)
