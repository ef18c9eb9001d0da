// Package extract turns the raw text of router admin pages into typed values.
//
// Every function here is pure: it reads only its arguments and returns freshly
// allocated results, so callers may use it from any number of goroutines.
package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type NumberKind int

const (
	KindInt NumberKind = iota
	KindFloat
)

func (k NumberKind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// Number is either an integer or a float reading, never both.
type Number struct {
	Kind  NumberKind
	Int   int64
	Float float64
}

func IntNumber(v int64) Number {
	return Number{Kind: KindInt, Int: v}
}

func FloatNumber(v float64) Number {
	return Number{Kind: KindFloat, Float: v}
}

// Float64 widens the number regardless of its kind.
func (n Number) Float64() float64 {
	if n.Kind == KindFloat {
		return n.Float
	}
	return float64(n.Int)
}

func (n Number) String() string {
	if n.Kind == KindFloat {
		return strconv.FormatFloat(n.Float, 'f', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}

// MarshalJSON keeps the int/float distinction visible, 12 stays 12 and 34.0
// stays 34.0.
func (n Number) MarshalJSON() ([]byte, error) {
	if n.Kind == KindFloat {
		s := strconv.FormatFloat(n.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return []byte(s), nil
	}
	return []byte(strconv.FormatInt(n.Int, 10)), nil
}

// Triple is a downstream/upstream reading followed by its unit, as rendered
// in the ADSL section of the device info page ("12.5\t34.0\tdB").
type Triple struct {
	Low  Number
	High Number
	Unit string
}

func (t Triple) MarshalJSON() ([]byte, error) {
	low, err := t.Low.MarshalJSON()
	if err != nil {
		return nil, err
	}
	high, err := t.High.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("[%s,%s,%s]", low, high, strconv.Quote(t.Unit))), nil
}

// ParseCount parses a counter such as "1,234,567".
func ParseCount(text string) (int64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	v, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: count %q", ErrMalformedNumber, text)
	}
	return v, nil
}

// ParseTriple parses "low\thigh\tunit". Both numbers are integers when both
// parse as integers, otherwise both are floats. Fields past the third are
// ignored.
func ParseTriple(text string) (Triple, error) {
	fields := strings.Split(text, "\t")
	if len(fields) < 3 {
		return Triple{}, fmt.Errorf(
			"%w: triple %q has %d fields, want 3",
			ErrMalformedNumber, text, len(fields),
		)
	}
	lowText := strings.TrimSpace(fields[0])
	highText := strings.TrimSpace(fields[1])

	low, lowErr := strconv.ParseInt(lowText, 10, 64)
	high, highErr := strconv.ParseInt(highText, 10, 64)
	if lowErr == nil && highErr == nil {
		return Triple{Low: IntNumber(low), High: IntNumber(high), Unit: fields[2]}, nil
	}

	flow, err := strconv.ParseFloat(lowText, 64)
	if err != nil {
		return Triple{}, fmt.Errorf("%w: triple low %q", ErrMalformedNumber, fields[0])
	}
	fhigh, err := strconv.ParseFloat(highText, 64)
	if err != nil {
		return Triple{}, fmt.Errorf("%w: triple high %q", ErrMalformedNumber, fields[1])
	}
	if !finite(flow) || !finite(fhigh) {
		return Triple{}, fmt.Errorf("%w: triple %q is not finite", ErrMalformedNumber, text)
	}
	return Triple{Low: FloatNumber(flow), High: FloatNumber(fhigh), Unit: fields[2]}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseCountRun parses a tab separated run of counts such as "0\t12".
func ParseCountRun(text string) ([]int64, error) {
	fields := strings.Split(text, "\t")
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := ParseCount(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
