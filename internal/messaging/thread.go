package messaging

// ThreadID derives the canonical thread key for a pair of actor ids by
// sorting them lexicographically and joining with an underscore, so both
// directions of a conversation always land in the same thread. Callers
// must reject a == b before reaching this.
func ThreadID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}
