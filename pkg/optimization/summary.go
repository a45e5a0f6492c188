// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a maximum bid search.
type Summary struct {
	Metric          string   `json:"metric" yaml:"metric"`
	Target          float64  `json:"target" yaml:"target"`
	Original        float64  `json:"original" yaml:"original"`
	Value           float64  `json:"value" yaml:"value"`
	Achieved        float64  `json:"achieved" yaml:"achieved"`
	Headroom        float64  `json:"headroom" yaml:"headroom"`
	Iterations      int      `json:"iterations" yaml:"iterations"`
	Converged       bool     `json:"converged" yaml:"converged"`
	Notes           []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty" yaml:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty" yaml:"valueDisplay,omitempty"`
}
