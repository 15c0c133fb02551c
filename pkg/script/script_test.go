package script

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	src := "open(\"クリップ.mp4\");\nplay;\n"

	got, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got != src {
		t.Errorf("expected %q, got %q", src, got)
	}
}

func TestDecodeShiftJIS(t *testing.T) {
	// "テスト" in Shift-JIS
	data := []byte{
		'p', 'r', 'i', 'n', 't', ' ', '"',
		0x83, 0x65, 0x83, 0x58, 0x83, 0x67,
		'"', ';',
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got != `print "テスト";` {
		t.Errorf("expected %q, got %q", `print "テスト";`, got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.sl")
	src := "open(\"clip.mp4\");\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got != src {
		t.Errorf("expected %q, got %q", src, got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.sl"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
