package config

import (
	"testing"
)

// FuzzValidateDocument tests schema validation of YAML config documents with
// arbitrary input.
// Run: go test -fuzz=FuzzValidateDocument -fuzztime=30s ./internal/config
func FuzzValidateDocument(f *testing.F) {
	seeds := []string{
		``,
		`{}`,
		`null`,
		`[]`,
		`strict: true`,
		"log:\n  level: debug\n",
		"discovery:\n  patterns: [\"*.log\", \"test-*.txt\"]\n",
		"publish:\n  enabled: true\n  s3:\n    bucket: b\n",
		"status:\n  failure_keywords: [\"错误\", \"ошибка\"]\n",
		"a: &x [1, *x]",
		"log: [unclosed",
		"? complex\n: key\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, data string) {
		// Must not panic; errors are expected for most inputs.
		_ = validateDocument("testlogs.yaml", []byte(data))
	})
}
