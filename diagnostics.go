package meshfabric

import "fmt"

// Diagnostics is a small warning ledger: a struct that records what
// happened during model construction so a caller can inspect it later,
// rather than printing straight to stderr and moving on. A nil
// *Diagnostics is valid and simply discards warnings, so components that
// don't care about diagnostics can pass nil.
type Diagnostics struct {
	InUse    bool
	warnings []string
}

// NewDiagnostics returns an active Diagnostics ledger.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{InUse: true}
}

// Warnf records a formatted warning. Safe to call on a nil receiver.
func (d *Diagnostics) Warnf(format string, args ...any) {
	if d == nil {
		return
	}
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns every warning recorded so far, in order.
func (d *Diagnostics) Warnings() []string {
	if d == nil {
		return nil
	}
	return d.warnings
}
