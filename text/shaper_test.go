package text

import (
	"testing"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
)

func TestVisualRuns_PlainLTR(t *testing.T) {
	str := "hello world"
	runs := visualRuns(str, len([]rune(str)))
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	r := runs[0]
	if r.start != 0 || r.end != len([]rune(str)) || r.dir != di.DirectionLTR {
		t.Errorf("run = %+v", r)
	}
}

func TestVisualRuns_MixedDirection(t *testing.T) {
	str := "abc אבג def" // Hebrew letters in the middle
	runs := visualRuns(str, len([]rune(str)))
	if len(runs) < 3 {
		t.Fatalf("got %d runs, want at least 3", len(runs))
	}

	sawRTL := false
	covered := 0
	for _, r := range runs {
		if r.end <= r.start {
			t.Errorf("empty run %+v", r)
		}
		covered += r.end - r.start
		if r.dir == di.DirectionRTL {
			sawRTL = true
		}
	}
	if !sawRTL {
		t.Error("no RTL run for Hebrew text")
	}
	if covered != len([]rune(str)) {
		t.Errorf("runs cover %d runes, want %d", covered, len([]rune(str)))
	}
}

func TestRunScript(t *testing.T) {
	tests := []struct {
		name  string
		runes []rune
		want  language.Script
	}{
		{"latin", []rune("abc"), language.Latin},
		{"leading spaces", []rune("   xyz"), language.Latin},
		{"hebrew", []rune("אב"), language.LookupScript('א')},
		{"all spaces", []rune("   "), language.Latin},
		{"empty", nil, language.Latin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runScript(tt.runes); got != tt.want {
				t.Errorf("runScript = %v, want %v", got, tt.want)
			}
		})
	}
}
