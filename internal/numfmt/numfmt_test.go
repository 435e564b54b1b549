package numfmt

import (
	"testing"

	"github.com/csl-go/citeproc/internal/value"
)

func TestFormatNumericPlain(t *testing.T) {
	n := value.ParseNumeric("2, 4-6")
	got := Format(n, Numeric, "volume", PageRangeNone, nil)
	want := "2, 4–6"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestFormatRoman(t *testing.T) {
	n := value.ParseNumeric("4")
	got := Format(n, Roman, "volume", PageRangeNone, nil)
	if got != "iv" {
		t.Fatalf("Format() = %q, want %q", got, "iv")
	}
}

func TestFormatOrdinalDefaultSuffix(t *testing.T) {
	n := value.ParseNumeric("2")
	got := Format(n, Ordinal, "edition", PageRangeNone, nil)
	if got != "2nd" {
		t.Fatalf("Format() = %q, want %q", got, "2nd")
	}
}

func TestFormatLongOrdinal(t *testing.T) {
	n := value.ParseNumeric("3")
	got := Format(n, LongOrdinal, "edition", PageRangeNone, nil)
	if got != "third" {
		t.Fatalf("Format() = %q, want %q", got, "third")
	}
}

func TestCompressPageChicago(t *testing.T) {
	cases := []struct{ in, want string }{
		{"321-328", "321–28"},
		{"100-104", "100–104"}, // multiple-of-100 boundary: always spelled out in full
		{"1100-1113", "1100–1113"},
		{"107-108", "107–8"},
		{"3-10", "3–10"},
	}
	for _, c := range cases {
		n := value.ParseNumeric(c.in)
		got := Format(n, Numeric, "page", PageRangeChicago, nil)
		if got != c.want {
			t.Errorf("Format(%q, Chicago) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCompressPageMinimal(t *testing.T) {
	n := value.ParseNumeric("42-45")
	got := Format(n, Numeric, "page", PageRangeMinimal, nil)
	if got != "42–5" {
		t.Fatalf("Format() = %q, want %q", got, "42–5")
	}
}

func TestCompressPageExpanded(t *testing.T) {
	n := value.ParseNumeric("321-328")
	got := Format(n, Numeric, "page", PageRangeExpanded, nil)
	if got != "321–328" {
		t.Fatalf("Format() = %q, want %q", got, "321–328")
	}
}

func TestFormatOpaqueString(t *testing.T) {
	n := value.ParseNumeric("L2-A")
	got := Format(n, Numeric, "locator", PageRangeNone, nil)
	if got != "L2-A" {
		t.Fatalf("Format() = %q, want %q", got, "L2-A")
	}
}
