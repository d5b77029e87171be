package ratings

// candidate is one possible value for a field, tagged with where it came from.
type candidate[T any] struct {
	source string
	value  *T
}

func cand[T any](source string, value *T) candidate[T] {
	return candidate[T]{source: source, value: value}
}

// firstNonNil resolves an ordered candidate list: the first non-nil value
// wins. It returns nil and "" when every candidate is nil.
func firstNonNil[T any](cands ...candidate[T]) (*T, string) {
	for _, c := range cands {
		if c.value != nil {
			return c.value, c.source
		}
	}
	return nil, ""
}

// Candidate sources, used in logs and tests.
const (
	sourceIcon       = "icon"
	sourceScorecard  = "scorecard"
	sourceStructured = "structured"
	sourceDOM        = "dom"
)
