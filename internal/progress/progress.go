// Package progress provides the notification capability long-running
// operations use to surface short status lines to the presentation layer.
// Emission is fire-and-forget: a reporter must never fail the operation
// that called it.
package progress

// Reporter receives short human-readable status strings before and during
// long operations (clone, structure scan, search).
type Reporter interface {
	Notify(message string)
}

// Nop is a Reporter that drops everything. It is the default wherever a
// caller does not supply one.
type Nop struct{}

// Notify implements Reporter
func (Nop) Notify(string) {}

// Func adapts a plain function to the Reporter interface.
type Func func(message string)

// Notify implements Reporter
func (f Func) Notify(message string) {
	f(message)
}

// OrNop returns r unchanged, or a Nop when r is nil, so call sites never
// need a nil check.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}
	return r
}
