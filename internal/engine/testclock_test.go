package engine

// fakeClock is a deterministic, test-only Clock: each call to Now
// advances by a fixed step, giving every batch in a test a distinct,
// predictable base timestamp without depending on wall-clock time.
type fakeClock struct {
	now  uint64
	step uint64
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: 1_000, step: 1_000}
}

func (c *fakeClock) Now() uint64 {
	ts := c.now
	c.now += c.step
	return ts
}
