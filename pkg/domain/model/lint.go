package model

// LintTool is one formatter or linter run over changed files. Files are
// appended after Args. Exit codes listed in Tolerate are logged and ignored;
// any other non-zero exit fails the run only when Fatal is set.
type LintTool struct {
	Name     string   `toml:"name"`
	Command  string   `toml:"command"`
	Args     []string `toml:"args"`
	Tolerate []int    `toml:"tolerate"`
	Fatal    bool     `toml:"fatal"`
}

// Tolerates reports whether exit code is tolerated for the tool
func (t LintTool) Tolerates(code int) bool {
	for _, c := range t.Tolerate {
		if c == code {
			return true
		}
	}
	return false
}

// DefaultLintTools is the black, isort, docformatter, flake8 chain for Python
func DefaultLintTools() []LintTool {
	return []LintTool{
		{Name: "black", Command: "black"},
		{Name: "isort", Command: "isort", Args: []string{"--profile=black"}},
		{
			Name:     "docformatter",
			Command:  "docformatter",
			Args:     []string{"--recursive", "--in-place", "--wrap-summaries", "88", "--wrap-descriptions", "88"},
			Tolerate: []int{3},
		},
		{Name: "flake8", Command: "flake8", Args: []string{"--ignore=E203,E501,W503"}, Fatal: true},
	}
}
