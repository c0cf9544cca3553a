package interfaces

// OutputWriter publishes step outputs to the workflow runner
type OutputWriter interface {
	SetOutput(name, value string) error
}
