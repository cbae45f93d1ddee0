// Package filter wraps a ring.Reader with an optional expr-lang predicate,
// evaluated per item, so a consumer can subscribe to a subset of the
// broadcast stream without the ring itself knowing about filtering (ring
// stays a pure FIFO broadcast per spec.md §1). Grounded on the expr-lang
// usage in
// _examples/go-arcade-arcade/internal/pkg/pipeline/variable_interpreter.go.
package filter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/alephtx/seqring/internal/source"
)

// Predicate evaluates an expr-lang boolean expression over a Tick's fields.
type Predicate struct {
	expression string
	program    *vm.Program
}

// NewPredicate compiles expression once; it may reference a Tick's Bid,
// Ask, and TimestampNs fields by name, e.g. "Ask-Bid > 0.5".
func NewPredicate(expression string) (*Predicate, error) {
	env := tickEnv(source.Tick{})
	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter: compile %q: %w", expression, err)
	}
	return &Predicate{expression: expression, program: program}, nil
}

// Match evaluates the compiled expression against t.
func (p *Predicate) Match(t source.Tick) (bool, error) {
	out, err := expr.Run(p.program, tickEnv(t))
	if err != nil {
		return false, fmt.Errorf("filter: eval %q: %w", p.expression, err)
	}
	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter: expression %q did not evaluate to a bool", p.expression)
	}
	return matched, nil
}

func tickEnv(t source.Tick) map[string]any {
	return map[string]any{
		"Bid":         t.Bid,
		"Ask":         t.Ask,
		"TimestampNs": t.TimestampNs,
	}
}

// Reader is the narrow interface FilteredReader wraps — satisfied by
// *ring.Reader[source.Tick].
type Reader interface {
	ReadNext() (source.Tick, bool)
}

// FilteredReader wraps a Reader, skipping items the predicate rejects.
// ReadNext still never blocks: it skips a run of rejected items within one
// call, and returns as soon as the underlying reader has nothing new.
type FilteredReader struct {
	reader    Reader
	predicate *Predicate
}

// NewFilteredReader wraps reader with predicate. A nil predicate makes this
// a pass-through.
func NewFilteredReader(reader Reader, predicate *Predicate) *FilteredReader {
	return &FilteredReader{reader: reader, predicate: predicate}
}

// ReadNext returns the next item that matches the predicate and was
// available without blocking, or ok=false if the underlying reader has
// caught up to the producer before a match was found.
func (f *FilteredReader) ReadNext() (source.Tick, bool) {
	for {
		v, ok := f.reader.ReadNext()
		if !ok {
			return v, false
		}
		if f.predicate == nil {
			return v, true
		}
		matched, err := f.predicate.Match(v)
		if err != nil || !matched {
			continue
		}
		return v, true
	}
}
