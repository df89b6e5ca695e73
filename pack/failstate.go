package pack

import "fmt"

// FailState is the shared failure-flag mechanism of §7: once Fail is
// called, the packer is latched into a failed state and Failed/Err report
// it. Concrete packers embed FailState and check Failed() at the top of
// every method that should become a no-op once failed.
type FailState struct {
	failed  bool
	message string
	path    string
}

// Fail latches the failure, recording the first message and path only —
// later calls to Fail are themselves no-ops, matching "subsequent calls are
// no-ops" for an already-failed packer.
func (f *FailState) Fail(path, format string, args ...any) {
	if f.failed {
		return
	}
	f.failed = true
	f.message = fmt.Sprintf(format, args...)
	f.path = path
}

func (f *FailState) Failed() bool {
	return f.failed
}

func (f *FailState) Message() string {
	return f.message
}

func (f *FailState) FailedPath() string {
	return f.path
}
