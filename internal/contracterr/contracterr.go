// Package contracterr provides the error-wrapping shape used for this
// module's own API contract violations (empty values, searchers used before
// they are populated), mirroring the {Op, Err}-plus-Unwrap shape an NFA
// compiler uses for its own CompileError/BuildError types.
package contracterr

import "fmt"

// ContractError wraps a sentinel contract-violation error with the
// operation that rejected the call.
type ContractError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying sentinel, so callers can still match it with
// errors.Is.
func (e *ContractError) Unwrap() error {
	return e.Err
}

// Wrap returns a *ContractError naming op as the rejecting operation and err
// as the violated contract.
func Wrap(op string, err error) error {
	return &ContractError{Op: op, Err: err}
}
