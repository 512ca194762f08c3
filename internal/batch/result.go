package batch

import "fmt"

// Success records the outputs written for one source file.
type Success struct {
	Source  string   `json:"source"`
	Outputs []string `json:"outputs"`
}

// Failure records why one source file could not be processed.
type Failure struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Result partitions a batch's inputs into successes and failures. Within
// each slice entries appear in the order their tasks completed.
type Result struct {
	Successes []Success `json:"successes"`
	Failures  []Failure `json:"failures"`
}

// Total returns the number of inputs the batch processed.
func (r Result) Total() int {
	return len(r.Successes) + len(r.Failures)
}

// Failed reports whether any input failed.
func (r Result) Failed() bool {
	return len(r.Failures) > 0
}

// Summary returns "N of M succeeded".
func (r Result) Summary() string {
	return fmt.Sprintf("%d of %d succeeded", len(r.Successes), r.Total())
}

// Outputs returns every output path in completion order.
func (r Result) Outputs() []string {
	var out []string
	for _, s := range r.Successes {
		out = append(out, s.Outputs...)
	}
	return out
}
