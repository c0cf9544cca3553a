package model

// CommandResult is the outcome of a finished external command
type CommandResult struct {
	Stdout   []byte
	ExitCode int
}
