package models

import (
	"encoding/json"
	"math"
)

// Ratio is a 0..1 fraction. It is NaN when the denominator was zero.
//
// encoding/json refuses NaN, so a NaN Ratio is encoded as null. Clients must
// treat null as "no tasks yet", not as zero progress.
type Ratio float64

// IsUndefined reports whether the ratio came from a 0/0 division
func (r Ratio) IsUndefined() bool {
	return math.IsNaN(float64(r))
}

// MarshalJSON implements json.Marshaler
func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsUndefined() || math.IsInf(float64(r), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// Progress is the analytics summary of one project.
// PercentageProgression holds a fraction in 0..1, not a value multiplied by 100.
type Progress struct {
	ProjectID             int   `json:"projectId"`
	TotalTasks            int   `json:"totalTasks"`
	CompletedTasks        int   `json:"completedTasks"`
	PercentageProgression Ratio `json:"percentageProgression"`
}
