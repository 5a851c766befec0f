// ABOUTME: Tests for candidate sources
// ABOUTME: Covers file, reader, line and stdin selection

package engine_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hikmaai-io/hikmaai-dictcrack/internal/engine"
)

func TestNewSource(t *testing.T) {
	t.Parallel()

	stdin := strings.NewReader("from stdin\n")

	src := engine.NewSource(engine.StdinPath, stdin)
	if src.Name() != "stdin" {
		t.Errorf("Name() = %q, want stdin", src.Name())
	}
	rc, err := src.Open()
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "from stdin\n" {
		t.Errorf("stdin data = %q", data)
	}

	src = engine.NewSource("words.txt", stdin)
	if fs, ok := src.(engine.FileSource); !ok || fs.Path != "words.txt" {
		t.Errorf("NewSource(words.txt) = %#v, want FileSource", src)
	}
}

func TestFileSource_Open(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	rc, err := engine.FileSource{Path: path}.Open()
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if string(data) != "a\nb\n" {
		t.Errorf("data = %q, want a\\nb\\n", data)
	}
}

func TestReaderSource_Nil(t *testing.T) {
	t.Parallel()

	if _, err := (engine.ReaderSource{}).Open(); err == nil {
		t.Error("Open() with nil reader expected error, got nil")
	}
	if got := (engine.ReaderSource{}).Name(); got != "reader" {
		t.Errorf("Name() = %q, want reader", got)
	}
}

func TestLineSource_Open(t *testing.T) {
	t.Parallel()

	rc, err := engine.LineSource{"one", "two"}.Open()
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "one\ntwo" {
		t.Errorf("data = %q, want one\\ntwo", data)
	}
}
