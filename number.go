package scriptline

import (
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	// Number is a numeric field of an action payload, as received from a
	// collaborator. Payloads are loosely typed: a number may be missing, given
	// as a number, given as a numeric string or be something unparseable.
	// Number keeps these apart so that the editor can pick the right fallback
	// for each field instead of failing the whole action.
	Number struct {
		value float64
		state numberState
	}

	numberState int
)

const (
	numberUnset numberState = iota
	numberValid
	numberInvalid
)

// Num returns a set Number. NaN and infinities give an invalid Number.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{state: numberInvalid}
	}
	return Number{value: v, state: numberValid}
}

// ParseNumber parses a decimal number, ignoring surrounding white space.
// Unparseable input gives an invalid (but set) Number; an empty string gives
// an unset Number.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{state: numberInvalid}
	}
	return Num(v)
}

// IsSet reports whether the field was present at all, parseable or not.
func (n Number) IsSet() bool { return n.state != numberUnset }

// IsZero is used by yaml to omit unset numbers.
func (n Number) IsZero() bool { return n.state == numberUnset }

// Valid reports whether the field was present and parsed to a finite number.
func (n Number) Valid() bool { return n.state == numberValid }

// Float returns the value and whether it is valid.
func (n Number) Float() (float64, bool) {
	return n.value, n.state == numberValid
}

// Or returns the value if it is valid, fallback otherwise.
func (n Number) Or(fallback float64) float64 {
	if n.state != numberValid {
		return fallback
	}
	return n.value
}

func (n Number) String() string {
	switch n.state {
	case numberValid:
		return strconv.FormatFloat(n.value, 'g', -1, 64)
	case numberInvalid:
		return "NaN"
	default:
		return ""
	}
}

func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*n = Number{state: numberInvalid}
		return nil
	}
	switch node.ShortTag() {
	case "!!null":
		*n = Number{}
	case "!!int", "!!float", "!!str":
		*n = ParseNumber(node.Value)
		if !n.IsSet() { // blank string
			*n = Number{state: numberInvalid}
		}
	default:
		*n = Number{state: numberInvalid}
	}
	return nil
}

func (n Number) MarshalYAML() (interface{}, error) {
	if n.state != numberValid {
		return nil, nil
	}
	return n.value, nil
}
