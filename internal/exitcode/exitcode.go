package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	LoadError       = 3
	ComputeError    = 4
	ServeError      = 5
)
