package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestNewMetrics_NonNil(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"response_times":[],"operation_times":[],"success_rates":[]}`
	if string(data) != want {
		t.Errorf("Marshal(NewMetrics()) = %s, want %s", data, want)
	}
}

func TestSummary_Fields(t *testing.T) {
	t.Parallel()
	s := Summary{TotalLogFiles: 2, TotalTests: 4, PassedTests: 3, FailedTests: 1, PassRate: "75.0%"}

	got := s.Fields()
	want := []Field{
		{"total_log_files", "2"},
		{"total_tests", "4"},
		{"passed_tests", "3"},
		{"failed_tests", "1"},
		{"pass_rate", "75.0%"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestPerformanceMetrics_GetSet(t *testing.T) {
	t.Parallel()
	var p PerformanceMetrics

	if !p.Empty() {
		t.Fatal("zero PerformanceMetrics should be empty")
	}

	p.Set(CategorySuccessRate, Stat{Min: 90, Max: 99.5, Avg: 95, Count: 3})
	p.Set(CategoryResponseTime, Stat{Min: 10, Max: 20, Avg: 15, Count: 2})

	if got := p.Present(); !reflect.DeepEqual(got, []Category{CategoryResponseTime, CategorySuccessRate}) {
		t.Errorf("Present() = %v, want response_time then success_rate", got)
	}
	if p.Get(CategoryOperationTime) != nil {
		t.Error("Get(operation_time) should be nil")
	}
	if got := p.Get(CategorySuccessRate); got == nil || got.Count != 3 {
		t.Errorf("Get(success_rate) = %+v, want count 3", got)
	}
	if p.Get(Category("latency")) != nil {
		t.Error("Get(unknown) should be nil")
	}
}

func TestPerformanceMetrics_OmitsAbsentCategories(t *testing.T) {
	t.Parallel()
	var p PerformanceMetrics
	p.Set(CategoryOperationTime, Stat{Min: 1, Max: 1, Avg: 1, Count: 1})

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "response_time") || strings.Contains(string(data), "success_rate") {
		t.Errorf("absent categories serialized: %s", data)
	}
	if !strings.Contains(string(data), `"operation_time"`) {
		t.Errorf("operation_time missing: %s", data)
	}
}

func TestStatus_Passed(t *testing.T) {
	t.Parallel()
	if !StatusPassed.Passed() {
		t.Error("StatusPassed.Passed() = false")
	}
	if StatusFailed.Passed() {
		t.Error("StatusFailed.Passed() = true")
	}
}
