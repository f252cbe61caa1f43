package analyzer

// IssueKind categorizes a finding.
type IssueKind string

const (
	KindSecurity    IssueKind = "security"
	KindError       IssueKind = "error"
	KindPerformance IssueKind = "performance"
	KindStyle       IssueKind = "style"
	KindComplexity  IssueKind = "complexity"
)

// Severity grades a finding.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Issue is one reported finding. Issues are immutable value records
// created only by Analyze; they have no identity beyond their fields.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Line     int       `json:"line"`
	Column   int       `json:"column"`
}
