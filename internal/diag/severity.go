package diag

// Severity ranks how much a diagnostic should worry the caller.
type Severity uint8

const (
	// SevInfo reports something the caller may want to know but that does
	// not affect the produced program.
	SevInfo Severity = iota
	// SevWarning reports a construct that is suspicious but compilable.
	SevWarning
	// SevError reports a construct that prevents code generation.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
