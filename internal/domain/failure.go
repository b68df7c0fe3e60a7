package domain

// TestFailure represents a failed test case extracted from a result artifact
type TestFailure struct {
	TestName   string   `json:"test_name"`
	FullTitle  string   `json:"full_title"`
	FilePath   string   `json:"file_path"`
	Message    string   `json:"message"`
	Diff       string   `json:"diff,omitempty"`
	StackTrace []string `json:"stack_trace"`
	Duration   int64    `json:"duration_ms"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
