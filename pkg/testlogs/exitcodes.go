// Package testlogs provides public constants for tools that run the testlogs
// binary, such as CI wrappers that branch on its exit status.
package testlogs

// Exit codes returned by the testlogs CLI.
const (
	// ExitSuccess indicates the reports were compiled and written.
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure: a report could not be written
	// or published, or --strict found a failed test.
	ExitFailure = 1

	// ExitConfigError indicates bad flags or an invalid configuration file.
	ExitConfigError = 2
)
