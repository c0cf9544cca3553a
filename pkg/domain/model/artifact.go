package model

// Artifact is a workflow run artifact
type Artifact struct {
	ID   int64
	Name string
}
