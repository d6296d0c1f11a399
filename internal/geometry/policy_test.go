package geometry_test

import (
	"encoding/json"
	"testing"

	"memmet/internal/geometry"
)

func TestParsePolicy(t *testing.T) {
	cases := []struct {
		in   string
		want geometry.Policy
	}{
		{"largest", geometry.Largest()},
		{"L", geometry.Largest()},
		{"smallest", geometry.Smallest()},
		{"s", geometry.Smallest()},
		{"1920:1080", geometry.Explicit(1920, 1080)},
		{"1280x720", geometry.Explicit(1280, 720)},
		{" 640X480 ", geometry.Explicit(640, 480)},
	}
	for _, tc := range cases {
		got, err := geometry.ParsePolicy(tc.in)
		if err != nil {
			t.Fatalf("ParsePolicy(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePolicy(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParsePolicyRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "huge", "1920", "0:1080", "1920:-1", "a:b", "1920:"} {
		if _, err := geometry.ParsePolicy(in); err == nil {
			t.Fatalf("expected ParsePolicy(%q) to fail", in)
		}
	}
}

func TestPolicyFlagValue(t *testing.T) {
	var p geometry.Policy
	if err := p.Set("800:600"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if p.String() != "800:600" || p.Type() != "dimensions" {
		t.Fatalf("unexpected flag rendering %q %q", p.String(), p.Type())
	}
	if err := p.Set("nope"); err == nil {
		t.Fatal("expected Set to fail")
	}
	if p != geometry.Explicit(800, 600) {
		t.Fatalf("failed Set must not modify the value, got %+v", p)
	}
}

func TestPolicyJSON(t *testing.T) {
	cases := []struct {
		policy  geometry.Policy
		encoded string
	}{
		{geometry.Largest(), `"largest"`},
		{geometry.Smallest(), `"smallest"`},
		{geometry.Explicit(1920, 1080), `{"width":1920,"height":1080}`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.policy)
		if err != nil {
			t.Fatalf("marshal %+v: %v", tc.policy, err)
		}
		if string(data) != tc.encoded {
			t.Fatalf("marshal %+v = %s, want %s", tc.policy, data, tc.encoded)
		}
		var decoded geometry.Policy
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if decoded != tc.policy {
			t.Fatalf("unmarshal %s = %+v, want %+v", data, decoded, tc.policy)
		}
	}
}

func TestPolicyJSONAcceptsLegacyEncoding(t *testing.T) {
	var p geometry.Policy
	if err := json.Unmarshal([]byte(`{"Px":{"x":1280,"y":720}}`), &p); err != nil {
		t.Fatalf("unmarshal legacy pair: %v", err)
	}
	if p != geometry.Explicit(1280, 720) {
		t.Fatalf("unexpected legacy pair decode: %+v", p)
	}
	if err := json.Unmarshal([]byte(`"Smallest"`), &p); err != nil {
		t.Fatalf("unmarshal legacy variant: %v", err)
	}
	if p != geometry.Smallest() {
		t.Fatalf("unexpected legacy variant decode: %+v", p)
	}
}

func TestPolicyJSONRejectsInvalid(t *testing.T) {
	for _, in := range []string{`"medium"`, `{"width":0,"height":10}`, `[1,2]`} {
		var p geometry.Policy
		if err := json.Unmarshal([]byte(in), &p); err == nil {
			t.Fatalf("expected %s to be rejected", in)
		}
	}
}
