package ring

// cacheLineSize is the assumed cache line size used for false-sharing
// isolation (spec.md §4.3, "cache-line isolation").
const cacheLineSize = 64

// cacheLinePad pads a struct to occupy its own cache line. Added
// unconditionally after a slot when isolation is requested, following the
// fixed `_ pad` fields used for the same purpose in
// _examples/other_examples/94201f67_hayabusa-cloud-lfq__spmc.go.go — Go
// generics can't size a pad from unsafe.Sizeof of a type parameter, so this
// is one cache line rather than a size-complemented pad (see DESIGN.md).
type cacheLinePad struct {
	_ [cacheLineSize]byte
}
