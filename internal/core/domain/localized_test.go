package domain

import (
	"encoding/json"
	"testing"
)

func TestResolve_PrefersActiveLanguage(t *testing.T) {
	text := LocalizedText{EN: "Sunrise Heights", VI: "Khu Bình Minh"}

	if got := text.Resolve(LangEN); got != "Sunrise Heights" {
		t.Fatalf("expected english value, got %q", got)
	}
	if got := text.Resolve(LangVI); got != "Khu Bình Minh" {
		t.Fatalf("expected vietnamese value, got %q", got)
	}
}

func TestResolve_FallsBackToOtherLanguage(t *testing.T) {
	text := LocalizedText{VI: "Khu Bình Minh"}

	if got := text.Resolve(LangEN); got != "Khu Bình Minh" {
		t.Fatalf("expected fallback to vietnamese, got %q", got)
	}
}

func TestResolve_EmptyValueResolvesToEmptyString(t *testing.T) {
	var text LocalizedText
	if got := text.Resolve(LangEN); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	if got := text.Resolve(LangVI); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestUnmarshal_AcceptsObjectShape(t *testing.T) {
	var text LocalizedText
	if err := json.Unmarshal([]byte(`{"en":"Tower A","vi":"Tòa A"}`), &text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.EN != "Tower A" || text.VI != "Tòa A" {
		t.Fatalf("unexpected value: %+v", text)
	}
}

func TestUnmarshal_AcceptsLegacyPlainString(t *testing.T) {
	var text LocalizedText
	if err := json.Unmarshal([]byte(`"Tower A"`), &text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.Resolve(LangEN) != "Tower A" || text.Resolve(LangVI) != "Tower A" {
		t.Fatalf("legacy string should resolve in both languages: %+v", text)
	}
}

func TestUnmarshal_MalformedValueDegradesToEmpty(t *testing.T) {
	var text LocalizedText
	if err := json.Unmarshal([]byte(`42`), &text); err != nil {
		t.Fatalf("malformed localized value must not fail decoding: %v", err)
	}
	if !text.IsEmpty() {
		t.Fatalf("expected empty value, got %+v", text)
	}
}
