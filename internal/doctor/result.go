package doctor

// Severity indicates the importance level of a check result.
type Severity int

const (
	SeverityPass Severity = iota
	SeverityInfo
	// SeverityWarning is a problem that does not stop zcf or the tools.
	SeverityWarning
	// SeverityError is a problem that breaks a zcf command or a tool.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityPass:
		return "pass"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckResult represents the outcome of a single diagnostic check.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details holds check-specific context such as file paths.
	Details map[string]any `json:"details,omitempty"`

	// Fixable reports whether zcf doctor --fix can repair the problem.
	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

func passed(name, category, msg string) *CheckResult {
	return &CheckResult{Name: name, Category: category, Status: SeverityPass, Message: msg}
}

// Summary aggregates counts of check results by severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}
