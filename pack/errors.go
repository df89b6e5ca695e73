package pack

import "fmt"

// LoadError is raised by the top-level entry point of any reader when the
// underlying packer finished in a failed state: a decode / schema mismatch.
type LoadError struct {
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "load: " + e.Message
	}
	return fmt.Sprintf("load: %s: %s", e.Path, e.Message)
}

// DumpError is raised by the top-level entry point of a writer on a
// structural impossibility (e.g. emitting a map key outside a map).
type DumpError struct {
	Path    string
	Message string
}

func (e *DumpError) Error() string {
	if e.Path == "" {
		return "dump: " + e.Message
	}
	return fmt.Sprintf("dump: %s: %s", e.Path, e.Message)
}
