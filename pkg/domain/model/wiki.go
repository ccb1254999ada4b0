package model

// WikiReport holds the free-text sections of a project's wiki status
// page. The report synthesizer merges these in verbatim; parsing lives
// in the wiki service.
type WikiReport struct {
	// Fields holds every key/value pair from the "Project Data" table,
	// e.g. "Program Manager", "Project Manager".
	Fields map[string]string

	Accomplishments string
	LookAhead       string
	Description     string
}

// Field returns the named project-data field, or empty when absent.
func (w *WikiReport) Field(name string) string {
	if w == nil || w.Fields == nil {
		return ""
	}
	return w.Fields[name]
}
