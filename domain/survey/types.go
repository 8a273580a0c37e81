package survey

import "fmt"

// RawTable is the header-plus-rows payload returned by the response sheet.
// Row 0 holds column names; every following row holds one respondent's cells.
type RawTable [][]string

// Record is one respondent's answers keyed by column name.
type Record map[string]string

// Dimension identifies one of the four measured survey constructs
type Dimension string

const (
	DimensionAdaptation  Dimension = "adaptation"
	DimensionGoal        Dimension = "goal"
	DimensionIntegration Dimension = "integration"
	DimensionLatency     Dimension = "latency"
)

// QuestionsPerDimension is the number of yes/no questions backing each dimension.
const QuestionsPerDimension = 5

// Dimensions lists every dimension in chart order.
var Dimensions = []Dimension{
	DimensionAdaptation,
	DimensionGoal,
	DimensionIntegration,
	DimensionLatency,
}

var dimensionPrefixes = map[Dimension]string{
	DimensionAdaptation:  "A",
	DimensionGoal:        "G",
	DimensionIntegration: "I",
	DimensionLatency:     "L",
}

// String returns the dimension name
func (d Dimension) String() string {
	return string(d)
}

// Prefix returns the column letter shared by the dimension's questions.
func (d Dimension) Prefix() string {
	return dimensionPrefixes[d]
}

// Valid reports whether d is one of the known dimensions.
func (d Dimension) Valid() bool {
	_, ok := dimensionPrefixes[d]
	return ok
}

// Keys returns the five column keys of the dimension, e.g. A1..A5.
func (d Dimension) Keys() []string {
	if !d.Valid() {
		return nil
	}
	prefix := d.Prefix()
	keys := make([]string, QuestionsPerDimension)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return keys
}

// QuestionKeys returns all twenty question columns in dimension order.
func QuestionKeys() []string {
	keys := make([]string, 0, len(Dimensions)*QuestionsPerDimension)
	for _, d := range Dimensions {
		keys = append(keys, d.Keys()...)
	}
	return keys
}

// DimensionOf maps a question column back to its dimension.
func DimensionOf(key string) (Dimension, bool) {
	for _, d := range Dimensions {
		for _, k := range d.Keys() {
			if k == key {
				return d, true
			}
		}
	}
	return "", false
}

// Tally counts affirmative and negative answers for one dimension
type Tally struct {
	Yes int `json:"yes"`
	No  int `json:"no"`
}

// Answered is the number of answers that were either yes or no.
func (t Tally) Answered() int {
	return t.Yes + t.No
}

// AggregateResult is the chart-facing summary of every response in a table.
type AggregateResult struct {
	TotalResponses int                 `json:"totalResponses"`
	Dimensions     map[Dimension]Tally `json:"dimensions"`
}

// Tally returns the counts for a dimension (zero for unknown dimensions).
func (r AggregateResult) Tally(d Dimension) Tally {
	return r.Dimensions[d]
}

// Equal reports whether two results carry the same total and tallies.
func (r AggregateResult) Equal(other AggregateResult) bool {
	if r.TotalResponses != other.TotalResponses {
		return false
	}
	for _, d := range Dimensions {
		if r.Tally(d) != other.Tally(d) {
			return false
		}
	}
	return true
}

// ZeroAggregate is the empty-state result: no responses, every tally {0, 0}.
func ZeroAggregate() AggregateResult {
	dims := make(map[Dimension]Tally, len(Dimensions))
	for _, d := range Dimensions {
		dims[d] = Tally{}
	}
	return AggregateResult{
		TotalResponses: 0,
		Dimensions:     dims,
	}
}
