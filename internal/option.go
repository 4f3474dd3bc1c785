package internal

// Option is a functional option for configuring the serve-mode application.
type Option func(*application)

type application struct {
	config    *Config
	noWatcher bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithoutWatcher disables the docs-tree watcher, so changes on disk do not
// trigger rescans or SSE events. The HTTP API is unaffected.
func WithoutWatcher() Option {
	return func(a *application) {
		a.noWatcher = true
	}
}
