package testlogs_test

import (
	"testing"

	"github.com/AndreyAkinshin/testlogs/internal/errors"
	"github.com/AndreyAkinshin/testlogs/pkg/testlogs"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", testlogs.ExitSuccess, 0},
		{"ExitFailure", testlogs.ExitFailure, 1},
		{"ExitConfigError", testlogs.ExitConfigError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("testlogs.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency keeps the public constants in step with the codes
// the CLI actually returns.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", testlogs.ExitSuccess, errors.ExitSuccess},
		{"Failure/RuntimeError", testlogs.ExitFailure, errors.ExitRuntimeError},
		{"ConfigError", testlogs.ExitConfigError, errors.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: testlogs constant = %d, errors constant = %d",
					tt.public, tt.internal)
			}
		})
	}
}
