// Package scope provides a generic lexical environment shared by static
// analysis (T = types.TypeKind) and runtime evaluation (T = eval.Value).
package scope

// Kind distinguishes plain block frames from function-boundary frames
type Kind int

const (
	Block Kind = iota
	Function
)

type frame[T any] struct {
	values           map[string]T
	functionBoundary bool
}

// Stack is an ordered stack of scope frames with function-boundary
// isolation. Frame 0 ("global") always exists and is never removed.
//
// Lookup behavior:
//   - At top level, names resolve through all active frames, nearest first.
//   - Inside a function, names resolve from the innermost frame down to the
//     nearest function boundary. If not found there, only the global frame
//     is consulted, never a caller's locals.
type Stack[T any] struct {
	frames []frame[T]
}

// NewStack creates a stack holding only the global frame
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{
		frames: []frame[T]{{values: make(map[string]T), functionBoundary: true}},
	}
}

// Push opens a new innermost frame. Callers must pair every Push with a
// deferred Pop so the frame is released on every exit path.
func (s *Stack[T]) Push(kind Kind) {
	s.frames = append(s.frames, frame[T]{
		values:           make(map[string]T),
		functionBoundary: kind == Function,
	})
}

// Pop removes the innermost frame. It is a no-op when only the global
// frame remains.
func (s *Stack[T]) Pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// SetLocal writes a binding into the innermost frame
func (s *Stack[T]) SetLocal(name string, value T) {
	s.frames[len(s.frames)-1].values[name] = value
}

// SetGlobal writes a binding directly into the global frame
func (s *Stack[T]) SetGlobal(name string, value T) {
	s.frames[0].values[name] = value
}

// Lookup resolves a name using the function-floor rule
func (s *Stack[T]) Lookup(name string) (T, bool) {
	floor := s.functionFloor()
	for i := len(s.frames) - 1; i >= floor; i-- {
		if v, ok := s.frames[i].values[name]; ok {
			return v, true
		}
	}
	if floor > 0 {
		if v, ok := s.frames[0].values[name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Assign overwrites an existing binding in place, resolving the frame with
// the same function-floor rule as Lookup. It reports whether a binding was
// found; an unbound name is left untouched.
func (s *Stack[T]) Assign(name string, value T) bool {
	floor := s.functionFloor()
	for i := len(s.frames) - 1; i >= floor; i-- {
		if _, ok := s.frames[i].values[name]; ok {
			s.frames[i].values[name] = value
			return true
		}
	}
	if floor > 0 {
		if _, ok := s.frames[0].values[name]; ok {
			s.frames[0].values[name] = value
			return true
		}
	}
	return false
}

// LookupCurrent resolves a name in exactly the innermost frame,
// for redeclaration checks.
func (s *Stack[T]) LookupCurrent(name string) (T, bool) {
	v, ok := s.frames[len(s.frames)-1].values[name]
	return v, ok
}

// InFunctionScope reports whether any function-boundary frame is active
// above the global frame.
func (s *Stack[T]) InFunctionScope() bool {
	return s.functionFloor() > 0
}

// GlobalValues returns a snapshot of the global frame's bindings
func (s *Stack[T]) GlobalValues() map[string]T {
	out := make(map[string]T, len(s.frames[0].values))
	for k, v := range s.frames[0].values {
		out[k] = v
	}
	return out
}

// Depth returns the number of active frames, including the global frame
func (s *Stack[T]) Depth() int {
	return len(s.frames)
}

// functionFloor returns the index of the topmost function-boundary frame,
// or 0 if none is active.
func (s *Stack[T]) functionFloor() int {
	for i := len(s.frames) - 1; i > 0; i-- {
		if s.frames[i].functionBoundary {
			return i
		}
	}
	return 0
}
