package ports

// Reporter prints human readable migration progress
type Reporter interface {
	Stage(index, total int, title string)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Done(format string, args ...any)
}
