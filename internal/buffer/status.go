package buffer

// Status is the occupancy view derived from a count and a capacity.
type Status struct {
	Full  bool // Count == capacity
	Empty bool // Count == 0
	Count int  // Occupied slots
}

// Evaluate derives the status flags from the occupied slot count.
func Evaluate(count, capacity int) Status {
	return Status{
		Full:  count == capacity,
		Empty: count == 0,
		Count: count,
	}
}
