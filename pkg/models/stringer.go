package models

// String methods for all custom string types.
// These are required for toon serialization, which uses fmt.Stringer.

// Priority
func (p Priority) String() string { return string(p) }

// IssueStatus
func (s IssueStatus) String() string { return string(s) }

// SprintStatus
func (s SprintStatus) String() string { return string(s) }

// Role
func (r Role) String() string { return string(r) }
