package buffer

// Pointers tracks the write and read positions into a Storage of fixed size.
// Both positions stay in [0, size) and only move forward by one with wraparound.
type Pointers struct {
	size     int
	writeIdx int
	readIdx  int
}

// NewPointers creates a tracker for a storage of the given size.
// Both positions start at 0.
func NewPointers(size int) Pointers {
	return Pointers{size: size}
}

// Write returns the slot the next accepted write lands in.
func (p *Pointers) Write() int { return p.writeIdx }

// Read returns the slot holding the oldest stored value.
func (p *Pointers) Read() int { return p.readIdx }

// AdvanceWrite moves the write position forward by one slot.
func (p *Pointers) AdvanceWrite() {
	p.writeIdx = p.next(p.writeIdx)
}

// AdvanceRead moves the read position forward by one slot.
func (p *Pointers) AdvanceRead() {
	p.readIdx = p.next(p.readIdx)
}

// Reset returns both positions to slot 0.
func (p *Pointers) Reset() {
	p.writeIdx = 0
	p.readIdx = 0
}

func (p *Pointers) next(i int) int {
	i++
	if i == p.size {
		return 0
	}
	return i
}
