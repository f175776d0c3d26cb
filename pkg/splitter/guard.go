package splitter

// DefaultMaxChunks caps the number of chunks a single split call may
// produce before explicit confirmation is required. The cap catches
// pathological inputs (a target size far smaller than one row), it does
// not bound correctness.
const DefaultMaxChunks = 100

// ConfirmFunc is the injected decision collaborator consulted when a split
// reaches the chunk cap. It receives the number of chunks produced so far
// and returns true to continue splitting.
type ConfirmFunc func(chunkCount int) bool

// guard enforces the chunk cap for one split call. Once the cap is
// confirmed it stays lifted for the remainder of the call.
type guard struct {
	maxChunks int
	confirm   ConfirmFunc
	lifted    bool
}

// allow reports whether chunk number chunkNum may be written. The
// confirmation collaborator is invoked exactly once, before the (cap+1)-th
// chunk.
func (g *guard) allow(chunkNum int) bool {
	if g.maxChunks <= 0 || g.lifted || chunkNum <= g.maxChunks {
		return true
	}
	if g.confirm != nil && g.confirm(chunkNum-1) {
		g.lifted = true
		return true
	}
	return false
}
