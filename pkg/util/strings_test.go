package util

import "testing"

func TestParseFloatMissing(t *testing.T) {
	for _, s := range []string{"", ".", "  ", "NaN", "Inf", "abc"} {
		if _, ok := ParseFloat(s); ok {
			t.Fatalf("expected %q to be missing", s)
		}
	}
}

func TestParseFloatValue(t *testing.T) {
	v, ok := ParseFloat(" 4.32 ")
	if !ok || v != 4.32 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
	v, ok = ParseFloat("12,845")
	if !ok || v != 12845 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
}

func TestFirstDecimal(t *testing.T) {
	v, ok := FirstDecimal("Manufacturing PMI® registered 48.7 percent in May")
	if !ok || v != 48.7 {
		t.Fatalf("unexpected %v %v", v, ok)
	}
	if _, ok := FirstDecimal("no number 48 here"); ok {
		t.Fatalf("integers are not decimals")
	}
}
