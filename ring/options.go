package ring

// config holds the construction-time choices that the C++ original expresses
// as compile-time booleans (spec.md §6, "BroadcastRing parameters"). Go has
// no zero-cost compile-time dispatch on plain bools in generic code, so they
// become functional options on the constructor instead — the same idiom the
// example pack itself uses, e.g. _examples/go-arcade-arcade/pkg/nova/options.go.
type config struct {
	cacheLineIsolation bool
	byteAtomicPayload  bool
}

// Option configures a BroadcastRing at construction time.
type Option func(*config)

// WithCacheLineIsolation pads each slot to its own cache line, eliminating
// false sharing between adjacent slots at the cost of memory (spec.md §5).
// With WithByteAtomicPayload, each slot's payload words live in a separate
// allocation that this padding does not cover; only the slot itself (version
// counter and cell header) is isolated.
func WithCacheLineIsolation() Option {
	return func(c *config) { c.cacheLineIsolation = true }
}

// WithByteAtomicPayload selects the byte-atomic PayloadCell variant (spec.md
// §4.1): every word of the payload moves through sync/atomic instead of a
// plain field copy. Costs per-word atomic traffic; use when the payload is
// not safely tearable (e.g. contains mixed fields with different natural
// alignments that a plain memcpy of a torn read could scramble).
func WithByteAtomicPayload() Option {
	return func(c *config) { c.byteAtomicPayload = true }
}

func (c config) cellMode() cellMode {
	if c.byteAtomicPayload {
		return cellAtomic
	}
	return cellTearable
}
