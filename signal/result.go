package signal

import (
	"encoding/json"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// Sentinel strings reported in place of a number.
const (
	Infinity             = "infinity"
	UndefinedNonPeriodic = "undefined (non-periodic)"
	UndefinedNonDecaying = "undefined (non-periodic and non-decaying)"
)

// Precision is the number of decimal places metrics are rounded to.
const Precision = 6

// Value is a metric: either a number rounded to Precision places or one of
// the sentinel strings. The zero Value is the number 0.
type Value struct {
	num      float64
	sentinel string
}

// Number returns a numeric Value rounded to Precision places. Negative zero
// becomes zero.
func Number(f float64) Value { return Value{num: Round(f)} }

// Sentinel returns a Value carrying s verbatim.
func Sentinel(s string) Value { return Value{sentinel: s} }

// Round rounds f to Precision decimal places and normalizes -0 to 0.
func Round(f float64) float64 {
	r := scalar.Round(f, Precision)
	if r == 0 {
		return 0
	}
	return r
}

func (v Value) IsSentinel() bool { return v.sentinel != "" }

// Float64 returns the number and true, or 0 and false for a sentinel.
func (v Value) Float64() (float64, bool) {
	if v.IsSentinel() {
		return 0, false
	}
	return v.num, true
}

func (v Value) String() string {
	if v.IsSentinel() {
		return v.sentinel
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsSentinel() {
		return json.Marshal(v.sentinel)
	}
	return json.Marshal(v.num)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Sentinel(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value{num: f}
	return nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	if v.IsSentinel() {
		return v.sentinel, nil
	}
	return v.num, nil
}

// Result is the serializable outcome of one analysis. A non-periodic result
// encodes its period as null; a failed one carries only Error.
type Result struct {
	Period *float64 `json:"period" yaml:"period"`
	Energy *Value   `json:"energy,omitempty" yaml:"energy,omitempty"`
	Power  *Value   `json:"power,omitempty" yaml:"power,omitempty"`
	Mean   *Value   `json:"mean,omitempty" yaml:"mean,omitempty"`
	Regime string   `json:"regime,omitempty" yaml:"regime,omitempty"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty"`
}

type failure struct {
	Error string `json:"error" yaml:"error"`
}

// plainResult has Result's fields without its methods.
type plainResult Result

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(failure{Error: r.Error})
	}
	return json.Marshal(plainResult(r))
}

func (r Result) MarshalYAML() (interface{}, error) {
	if r.Error != "" {
		return failure{Error: r.Error}, nil
	}
	return plainResult(r), nil
}

func valuePtr(v Value) *Value { return &v }
