package eval

// signal tags the control-flow outcome of a statement
type signal int

const (
	sigNormal signal = iota
	sigReturn
	sigBreak
	sigContinue
)

// StmtResult is the outcome of executing one statement. Normal falls
// through; Return/Break/Continue propagate upward until something absorbs
// them: a while loop absorbs Break and Continue, a function-call boundary
// absorbs Return, and everything else passes them through unchanged.
type StmtResult struct {
	sig      signal
	value    Value
	hasValue bool
}

// Normal is the fall-through result
func Normal() StmtResult {
	return StmtResult{sig: sigNormal}
}

// ReturnOf carries an optional return value. ok is false for a bare
// return or a return whose expression failed.
func ReturnOf(v Value, ok bool) StmtResult {
	return StmtResult{sig: sigReturn, value: v, hasValue: ok}
}

// BreakSignal exits the nearest enclosing loop
func BreakSignal() StmtResult {
	return StmtResult{sig: sigBreak}
}

// ContinueSignal skips to the next iteration of the nearest enclosing loop
func ContinueSignal() StmtResult {
	return StmtResult{sig: sigContinue}
}

func (r StmtResult) IsNormal() bool   { return r.sig == sigNormal }
func (r StmtResult) IsReturn() bool   { return r.sig == sigReturn }
func (r StmtResult) IsBreak() bool    { return r.sig == sigBreak }
func (r StmtResult) IsContinue() bool { return r.sig == sigContinue }

// ReturnValue unwraps the value carried by a Return result
func (r StmtResult) ReturnValue() (Value, bool) {
	return r.value, r.hasValue
}
