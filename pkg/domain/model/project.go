package model

// Project is an upstream tracker project.
type Project struct {
	ID          string
	Name        string
	Description string
	State       string
	Visibility  string
	IsArchived  bool
}

// Clone returns a copy of the project.
func (p *Project) Clone() *Project {
	copied := *p
	return &copied
}

// Team is a team within a project.
type Team struct {
	ID          string
	Name        string
	ProjectID   string
	ProjectName string
}
