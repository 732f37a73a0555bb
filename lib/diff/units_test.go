package diff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnitsSplitsPerRune(t *testing.T) {
	units := Units("héllo")

	expected := []string{"h", "é", "l", "l", "o"}
	if difference := cmp.Diff(expected, units); difference != "" {
		t.Error("Unexpected units (-want +got):\n" + difference)
	}
}

func TestUnitsKeepsCRLFTogether(t *testing.T) {
	units := Units("a\r\nb\nc\r")

	expected := []string{"a", "\r\n", "b", "\n", "c", "\r"}
	if difference := cmp.Diff(expected, units); difference != "" {
		t.Error("Unexpected units (-want +got):\n" + difference)
	}
}

func TestUnitsEmptyString(t *testing.T) {
	if units := Units(""); units != nil {
		t.Error("Expected nil, got ", units)
	}
}

func TestUnitsRoundTrip(t *testing.T) {
	inputs := []string{"hello", "日本語", "a\r\n\r\nb", "🎉🎊", "\r\r\n\n"}
	for _, input := range inputs {
		var joined string
		for _, u := range Units(input) {
			joined += u
		}
		if joined != input {
			t.Errorf("Units(%q) does not round-trip, got %q", input, joined)
		}
	}
}

func TestBuilderCanonicalOrdering(t *testing.T) {
	builder := NewBuilder()
	builder.Retain("ab")
	builder.Insert("X")
	builder.Delete("cd")
	builder.Insert("Y")
	builder.Retain("ef")
	script := builder.Script()

	expected := Script{
		{Kind: Retain, Text: "ab"},
		{Kind: Delete, Text: "cd"},
		{Kind: Insert, Text: "XY"},
		{Kind: Retain, Text: "ef"},
	}
	if difference := cmp.Diff(expected, script); difference != "" {
		t.Error("Unexpected script (-want +got):\n" + difference)
	}
}

func TestBuilderMergesAdjacentOps(t *testing.T) {
	builder := NewBuilder()
	builder.Retain("a")
	builder.Retain("b")
	builder.Delete("c")
	builder.Delete("d")
	script := builder.Script()

	expected := Script{
		{Kind: Retain, Text: "ab"},
		{Kind: Delete, Text: "cd"},
	}
	if difference := cmp.Diff(expected, script); difference != "" {
		t.Error("Unexpected script (-want +got):\n" + difference)
	}
}

func TestBuilderIgnoresEmptySpans(t *testing.T) {
	builder := NewBuilder()
	builder.Retain("")
	builder.Insert("")
	builder.Delete("")
	script := builder.Script()

	if len(script) != 0 {
		t.Error("Expected an empty script, got ", script)
	}
}
