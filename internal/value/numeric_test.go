package value

import "testing"

func TestParseNumericRoundTrip(t *testing.T) {
	cases := []string{"2", "2, 4", "2-4, 5", "2nd", "L2", "2nd-4th"}
	for _, raw := range cases {
		n := ParseNumeric(raw)
		if !n.IsNumeric() {
			t.Errorf("ParseNumeric(%q): expected numeric, got opaque string", raw)
			continue
		}
		if got := n.Verbatim(); got != raw {
			t.Errorf("ParseNumeric(%q).Verbatim() = %q, want %q", raw, got, raw)
		}
	}
}

func TestParseNumericOpaque(t *testing.T) {
	cases := []string{"", "n/a", "TBD"}
	for _, raw := range cases {
		n := ParseNumeric(raw)
		if n.IsNumeric() {
			t.Errorf("ParseNumeric(%q): expected opaque, got numeric tokens %v", raw, n.Tokens)
		}
	}
}

func TestRomanRoundTrip(t *testing.T) {
	for _, n := range []uint32{1, 4, 9, 14, 40, 90, 444, 1994, 3999} {
		r := toRoman(n)
		got, ok := fromRoman(r)
		if !ok || got != n {
			t.Errorf("roman round trip failed for %d: %q -> %d (ok=%v)", n, r, got, ok)
		}
	}
}

func TestNameParseInverted(t *testing.T) {
	n := ParseLiteralPersonalName("van der Berg, Jan")
	if n.Family != "Berg" || n.NonDroppingParticle != "van der" || n.Given != "Jan" {
		t.Errorf("unexpected parse: %+v", n)
	}
}

func TestNameParseDirect(t *testing.T) {
	n := ParseLiteralPersonalName("Jan van der Berg")
	if n.Family != "Berg" || n.NonDroppingParticle != "van der" || n.Given != "Jan" {
		t.Errorf("unexpected parse: %+v", n)
	}
}

func TestParseDateParts(t *testing.T) {
	d := ParseDate("1978-03-15")
	if d.IsLiteral() || d.Single == nil {
		t.Fatalf("expected single date, got %+v", d)
	}
	if d.Single.Year != 1978 || d.Single.Month != 3 || d.Single.Day != 15 {
		t.Errorf("unexpected date: %+v", d.Single)
	}
}

func TestParseDateRange(t *testing.T) {
	d := ParseDate("1978/1980")
	if !d.IsRange() {
		t.Fatalf("expected range, got %+v", d)
	}
	if d.Range[0].Year != 1978 || d.Range[1].Year != 1980 {
		t.Errorf("unexpected range: %+v", d.Range)
	}
}

func TestDateHasYearOnlyRangeOR(t *testing.T) {
	// One endpoint year-only, the other month-precision: OR semantics (§9
	// Open Question) means HasYearOnly is still true.
	d := DateOrRange{Range: &[2]Date{{Year: 1978}, {Year: 1980, Month: 3}}}
	if !d.HasYearOnly() {
		t.Errorf("expected HasYearOnly true under OR semantics")
	}
	if !d.HasMonthOrSeason() {
		t.Errorf("expected HasMonthOrSeason true under OR semantics")
	}
}
