package survey

// Literal cell values the questionnaire writes for yes and no.
const (
	LiteralYes = "Ya"
	LiteralNo  = "Tidak"
)

// Answer is the classification of a single cell
type Answer int

const (
	AnswerNone Answer = iota
	AnswerYes
	AnswerNo
)

// Classify maps a cell value to an Answer. Matching is exact: no trimming and no
// case folding, so "ya" or " Ya" count as neither.
func Classify(value string) Answer {
	switch value {
	case LiteralYes:
		return AnswerYes
	case LiteralNo:
		return AnswerNo
	default:
		return AnswerNone
	}
}

// String returns a short label for logs
func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	default:
		return "none"
	}
}
