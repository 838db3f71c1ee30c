package game

// Used is the set of path hashes already credited in a round.
// Treat it as immutable: RecordPath returns a new set.
type Used map[string]struct{}

// IsPathReused reports whether hash has been credited before.
func IsPathReused(hash string, used Used) bool {
	_, ok := used[hash]
	return ok
}

// RecordPath returns a copy of used with hash added.
func RecordPath(hash string, used Used) Used {
	out := make(Used, len(used)+1)
	for h := range used {
		out[h] = struct{}{}
	}
	out[hash] = struct{}{}
	return out
}
