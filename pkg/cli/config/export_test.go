package config

// SetPath points the workspace loader at a file for tests.
func (w *Workspace) SetPath(path string) {
	w.path = path
}

// SetCredentials fills the tracker flags for tests.
func (x *Tracker) SetCredentials(orgURL, pat string) {
	x.orgURL = orgURL
	x.pat = pat
}

// NewLogger builds a logger config directly for tests.
func NewLogger(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}
