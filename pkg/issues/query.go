package issues

// Query is the generic filter handed to every adapter.
type Query struct {
	ProjectKey string `json:"project_key" yaml:"project_key"`                 // Jira project, GitHub owner/repo, GitLab project id, Linear team id
	Component  string `json:"component,omitempty" yaml:"component,omitempty"` // Optional Jira component
	OpenOnly   bool   `json:"open_only" yaml:"open_only"`                     // Restrict to issues not in a done state
}
