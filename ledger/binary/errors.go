package binary

import "fmt"

// StructuralError reports a fatal decoding failure: the stream passed
// Test but its contents are internally inconsistent. It is always a
// programming or corruption bug, never a normal "cache not usable"
// outcome — that is signaled by ReadJournal returning a nil journal
// with a nil error instead.
type StructuralError struct {
	Reason string
	Err    error
}

func (e *StructuralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledgerbin: corrupt cache: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ledgerbin: corrupt cache: %s", e.Reason)
}

func (e *StructuralError) Unwrap() error { return e.Err }

func structuralf(format string, args ...any) error {
	return &StructuralError{Reason: fmt.Sprintf(format, args...)}
}

func structuralWrap(reason string, err error) error {
	return &StructuralError{Reason: reason, Err: err}
}
