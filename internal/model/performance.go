package model

// Category names a class of performance metric.
type Category string

const (
	CategoryResponseTime  Category = "response_time"
	CategoryOperationTime Category = "operation_time"
	CategorySuccessRate   Category = "success_rate"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryResponseTime,
	CategoryOperationTime,
	CategorySuccessRate,
}

// Stat is the rollup of one category across all sections.
type Stat struct {
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Avg   float64 `json:"avg" yaml:"avg"`
	Count int     `json:"count" yaml:"count"`
}

// PerformanceMetrics maps categories to their rollups. A nil entry means the
// category had no observed values and is omitted from every rendering.
type PerformanceMetrics struct {
	ResponseTime  *Stat `json:"response_time,omitempty" yaml:"response_time,omitempty"`
	OperationTime *Stat `json:"operation_time,omitempty" yaml:"operation_time,omitempty"`
	SuccessRate   *Stat `json:"success_rate,omitempty" yaml:"success_rate,omitempty"`
}

// Get returns the rollup for c, or nil if the category is absent.
func (p PerformanceMetrics) Get(c Category) *Stat {
	switch c {
	case CategoryResponseTime:
		return p.ResponseTime
	case CategoryOperationTime:
		return p.OperationTime
	case CategorySuccessRate:
		return p.SuccessRate
	}
	return nil
}

// Set stores the rollup for c. Unknown categories are ignored.
func (p *PerformanceMetrics) Set(c Category, s Stat) {
	switch c {
	case CategoryResponseTime:
		p.ResponseTime = &s
	case CategoryOperationTime:
		p.OperationTime = &s
	case CategorySuccessRate:
		p.SuccessRate = &s
	}
}

// Present returns the categories that have a rollup, in report order.
func (p PerformanceMetrics) Present() []Category {
	var present []Category
	for _, c := range Categories {
		if p.Get(c) != nil {
			present = append(present, c)
		}
	}
	return present
}

// Empty reports whether no category has a rollup.
func (p PerformanceMetrics) Empty() bool {
	return len(p.Present()) == 0
}
