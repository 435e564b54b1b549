package outfmt

import "testing"

func TestPlainAffixedEmptyContent(t *testing.T) {
	var f Plain
	if got := f.Affixed("", "(", ")"); got != "" {
		t.Fatalf("Affixed(empty) = %q, want empty", got)
	}
	if got := f.Affixed("2020", "(", ")"); got != "(2020)" {
		t.Fatalf("Affixed() = %q, want %q", got, "(2020)")
	}
}

func TestPlainGroupSkipsEmpty(t *testing.T) {
	var f Plain
	got := f.Group([]string{"a", "", "b"}, ", ")
	if got != "a, b" {
		t.Fatalf("Group() = %q, want %q", got, "a, b")
	}
}

func TestMicroHTMLTextNodeEscapes(t *testing.T) {
	var f MicroHTML
	got := f.TextNode("Tom & Jerry <1>")
	want := "Tom &amp; Jerry &lt;1&gt;"
	if got != want {
		t.Fatalf("TextNode() = %q, want %q", got, want)
	}
}

func TestMicroHTMLWithFormat(t *testing.T) {
	var f MicroHTML
	got := f.WithFormat("Title", true, true)
	if got != "<i><b>Title</b></i>" {
		t.Fatalf("WithFormat() = %q, want %q", got, "<i><b>Title</b></i>")
	}
}

func TestEndsWithFullStop(t *testing.T) {
	var f Plain
	if !f.EndsWithFullStop("Done.") {
		t.Fatalf("expected true for trailing period")
	}
	if f.EndsWithFullStop("Done") {
		t.Fatalf("expected false with no terminator")
	}
	if !f.EndsWithFullStop(`Done."`) {
		t.Fatalf("expected true through a trailing quote")
	}
}

func TestApplyTextCaseForms(t *testing.T) {
	cases := []struct{ in, mode, want string }{
		{"hello world", "uppercase", "HELLO WORLD"},
		{"HELLO WORLD", "lowercase", "hello world"},
		{"hello world", "capitalize-first", "Hello world"},
		{"HELLO. there", "sentence", "Hello. there"},
	}
	for _, c := range cases {
		got := applyTextCase(c.in, c.mode, "en")
		if got != c.want {
			t.Errorf("applyTextCase(%q, %q) = %q, want %q", c.in, c.mode, got, c.want)
		}
	}
}
