package fontmeta

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/veela/pkg/errors"
)

func TestWeightString(t *testing.T) {
	tests := []struct {
		name string
		w    Weight
		want string
	}{
		{"numeric", Numeric(700), "700"},
		{"range", Range(100, 900), "100 900"},
		{"keyword", Keyword("normal"), "normal"},
		{"zero", Weight{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	if !Range(100, 900).IsRange() {
		t.Error("Range(100, 900).IsRange() = false")
	}
	if Numeric(400).IsRange() || Keyword("normal").IsRange() {
		t.Error("IsRange() true for non-range weight")
	}
}

func TestWeightJSON(t *testing.T) {
	m := Metadata{Base64: "AAAA", Family: "Inter", Style: "normal", Weight: Numeric(700)}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"base64":"AAAA","family":"Inter","style":"normal","weight":700,"compressed":false}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var got struct {
		A Weight `json:"a"`
		B Weight `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a": 300, "b": "100 900"}`), &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.A != Numeric(300) || got.B != Range(100, 900) {
		t.Errorf("Unmarshal() = %v / %v", got.A, got.B)
	}

	if err := json.Unmarshal([]byte(`{"a": true}`), &got); err == nil {
		t.Error("Unmarshal(bool) should fail")
	}
}

func TestWeightTOML(t *testing.T) {
	var got struct {
		A Weight `toml:"a"`
		B Weight `toml:"b"`
	}
	if _, err := toml.Decode("a = 500\nb = \"normal\"\n", &got); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if got.A != Numeric(500) || got.B != Keyword("normal") {
		t.Errorf("Decode() = %v / %v", got.A, got.B)
	}
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		m    Metadata
		want string
	}{
		{Metadata{Family: "Inter", Style: "normal", Weight: Numeric(700)}, "Inter-normal-700"},
		{Metadata{Family: "InterVariable", Style: "italic", Weight: Range(100, 900)}, "InterVariable-italic-100 900"},
		{Metadata{Family: "Inter"}, "Inter-normal-normal"},
	}

	for _, tt := range tests {
		if got := tt.m.CacheKey(); got != tt.want {
			t.Errorf("CacheKey() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       Metadata
		wantErr bool
	}{
		{"valid", Metadata{Family: "Inter", Style: StyleNormal, Weight: Numeric(700)}, false},
		{"keyword weight", Metadata{Family: "Inter", Style: "italic", Weight: Keyword(WeightNormal)}, false},
		{"range weight", Metadata{Family: "InterVariable", Style: StyleNormal, Weight: Range(100, 900)}, false},
		{"empty family", Metadata{Style: StyleNormal, Weight: Numeric(700)}, true},
		{"empty style", Metadata{Family: "Inter", Weight: Numeric(400)}, true},
		{"weight too high", Metadata{Family: "Inter", Style: StyleNormal, Weight: Numeric(5000)}, true},
		{"weight too low", Metadata{Family: "Inter", Style: StyleNormal, Weight: Numeric(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}
