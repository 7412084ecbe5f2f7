package steer

// Counter selects the resolver variant for a tick. It cycles mod 64: every
// 16th call picks one of the four rare variants in turn, other calls
// alternate between the two common ones.
type Counter struct {
	value uint8
}

// NextPathIndex advances the counter and returns the variant to use.
func (c *Counter) NextPathIndex() uint8 {
	c.value = (c.value + 1) & 63
	if c.value&0x0F == 0 {
		return CommonVariants + c.value>>4
	}
	return c.value & 1
}

// Variation is a 4-way round robin used to choose between tied shortest
// path directions.
type Variation struct {
	value uint8
}

// Next advances and returns the selector.
func (v *Variation) Next() uint8 {
	v.value = (v.value + 1) & 3
	return v.value
}

// Tick is the read-only per-tick snapshot handed to every agent.
type Tick struct {
	Seq       uint64
	PathIndex uint8
	Variation uint8
}

// Clock owns the per-system rotating counters. One goroutine advances it
// once per tick and passes the resulting Tick to the movement pass.
type Clock struct {
	seq       uint64
	counter   Counter
	variation Variation
}

// Advance moves all counters forward one tick.
func (c *Clock) Advance() Tick {
	c.seq++
	return Tick{
		Seq:       c.seq,
		PathIndex: c.counter.NextPathIndex(),
		Variation: c.variation.Next(),
	}
}

// Reset rewinds the clock to its zero state.
func (c *Clock) Reset() { *c = Clock{} }
