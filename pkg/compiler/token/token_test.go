package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected Type
	}{
		{"if", IF},
		{"while", WHILE},
		{"print", PRINT},
		{"open", OPEN},
		{"wait", WAIT},
		{"is_playing", IS_PLAYING},
		{"counter", IDENT},
		{"IF", IDENT},   // keywords are case-sensitive
		{"Play", IDENT},
		{"waiting", IDENT},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.expected {
			t.Errorf("LookupIdent(%q): expected %s, got %s", tt.ident, tt.expected, got)
		}
	}
}

func TestClassification(t *testing.T) {
	for _, cmd := range []Type{OPEN, PLAY, PAUSE, STOP, SEEK, FORWARD, REWIND, WAIT} {
		if !IsCommand(cmd) {
			t.Errorf("expected %s to be a command", cmd)
		}
		if IsQuery(cmd) {
			t.Errorf("%s must not be a query", cmd)
		}
	}
	for _, q := range []Type{POSITION, DURATION, ENDED, IS_PLAYING} {
		if !IsQuery(q) {
			t.Errorf("expected %s to be a query", q)
		}
		if IsCommand(q) {
			t.Errorf("%s must not be a command", q)
		}
	}
	if IsCommand(IDENT) || IsQuery(PRINT) {
		t.Error("non-media keywords must not classify as commands or queries")
	}
}
