package ports

// Logger receives progress lines. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}
