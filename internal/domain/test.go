package domain

// Spec represents a spec file selected for execution
type Spec struct {
	Path     string // Full path to the spec file
	FilePath string // Path relative to the project
	FileName string // Just the filename
}

// SpecCase represents a single `it(...)` block within a spec file
type SpecCase struct {
	Title    string // Title passed to it()
	FilePath string // Path to the spec file containing this case
	Line     int    // 1-based line of the it() call
}
