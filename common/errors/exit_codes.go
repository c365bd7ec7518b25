package errors

type ExitCode int

const (
	// Bad flags or unreadable configuration.
	ConfigFailureExitCode ExitCode = 70

	// A container or locator could not be created.
	ContainerFailureExitCode ExitCode = 80

	// An action failed to initialize.
	InitializeFailureExitCode ExitCode = 90

	// A message failed in the pipeline.
	ProcessFailureExitCode ExitCode = 100

	// Teardown reported errors.
	DestroyFailureExitCode ExitCode = 110
)
