package geometry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Kind enumerates the policy variants.
type Kind int

const (
	KindLargest Kind = iota
	KindSmallest
	KindExplicit
)

// Policy selects how the canonical geometry is chosen.
type Policy struct {
	Kind   Kind
	Width  int
	Height int
}

// Largest picks the input with the greatest area.
func Largest() Policy { return Policy{Kind: KindLargest} }

// Smallest is recognised but never resolvable.
func Smallest() Policy { return Policy{Kind: KindSmallest} }

// Explicit fixes the output geometry.
func Explicit(width, height int) Policy {
	return Policy{Kind: KindExplicit, Width: width, Height: height}
}

// ParsePolicy accepts "largest"/"l", "smallest"/"s" or a "W:H" / "WxH" pair.
func ParsePolicy(value string) (Policy, error) {
	cleaned := strings.ToLower(strings.TrimSpace(value))
	switch cleaned {
	case "largest", "l":
		return Largest(), nil
	case "smallest", "s":
		return Smallest(), nil
	case "":
		return Policy{}, errors.New("dimensions: empty value")
	}

	sep := ":"
	if !strings.Contains(cleaned, sep) {
		sep = "x"
	}
	w, h, ok := strings.Cut(cleaned, sep)
	if !ok {
		return Policy{}, fmt.Errorf("dimensions: %q is not largest, smallest or WIDTH:HEIGHT", value)
	}
	width, err := parseSide(w)
	if err != nil {
		return Policy{}, fmt.Errorf("dimensions: width in %q: %w", value, err)
	}
	height, err := parseSide(h)
	if err != nil {
		return Policy{}, fmt.Errorf("dimensions: height in %q: %w", value, err)
	}
	return Explicit(width, height), nil
}

func parseSide(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.New("not a whole number")
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}

// String renders the policy in the form ParsePolicy accepts.
func (p Policy) String() string {
	switch p.Kind {
	case KindSmallest:
		return "smallest"
	case KindExplicit:
		return fmt.Sprintf("%d:%d", p.Width, p.Height)
	default:
		return "largest"
	}
}

// Set implements pflag.Value.
func (p *Policy) Set(value string) error {
	parsed, err := ParsePolicy(value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Type implements pflag.Value.
func (p *Policy) Type() string { return "dimensions" }

var _ pflag.Value = (*Policy)(nil)

type explicitJSON struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type legacyExplicitJSON struct {
	Px *struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"Px"`
}

// MarshalJSON encodes "largest", "smallest" or {"width":W,"height":H}.
func (p Policy) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindExplicit:
		return json.Marshal(explicitJSON{Width: p.Width, Height: p.Height})
	default:
		return json.Marshal(p.String())
	}
}

// UnmarshalJSON decodes the current encoding and the older
// "Largest" / {"Px":{"x":W,"y":H}} form.
func (p *Policy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		switch strings.ToLower(text) {
		case "largest":
			*p = Largest()
		case "smallest":
			*p = Smallest()
		default:
			return fmt.Errorf("dimensions: unknown value %q", text)
		}
		return nil
	}

	var legacy legacyExplicitJSON
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("dimensions: %w", err)
	}
	if legacy.Px != nil {
		return p.setExplicit(legacy.Px.X, legacy.Px.Y)
	}
	var explicit explicitJSON
	if err := json.Unmarshal(data, &explicit); err != nil {
		return fmt.Errorf("dimensions: %w", err)
	}
	return p.setExplicit(explicit.Width, explicit.Height)
}

func (p *Policy) setExplicit(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("dimensions: %dx%d must be positive", width, height)
	}
	*p = Explicit(width, height)
	return nil
}
