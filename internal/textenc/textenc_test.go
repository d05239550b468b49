package textenc

import (
	"os"
	"path/filepath"
	"testing"

	"gitscout/internal/errors"
)

func TestDecodeUTF8(t *testing.T) {
	text, name, err := Decode([]byte("héllo wörld"), ReadChain())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if name != "utf-8" {
		t.Errorf("Expected utf-8, got %s", name)
	}
	if text != "héllo wörld" {
		t.Errorf("Unexpected text: %q", text)
	}
}

func TestDecodeLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte
	data := []byte{'c', 'a', 'f', 0xE9}

	text, name, err := Decode(data, ReadChain())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if name != "latin-1" {
		t.Errorf("Expected latin-1 fallback, got %s", name)
	}
	if text != "café" {
		t.Errorf("Expected café, got %q", text)
	}
}

func TestDecodeUTF8OnlyChainFails(t *testing.T) {
	data := []byte{0xFF, 0xFE, 0x00}

	_, _, err := Decode(data, []Encoding{UTF8})
	if err == nil {
		t.Fatal("Expected decode failure for invalid UTF-8 with strict chain")
	}
	if errors.CodeOf(err) != errors.Undecodable {
		t.Errorf("Expected UNDECODABLE, got %s", errors.CodeOf(err))
	}
}

func TestScanChainIsNarrower(t *testing.T) {
	if len(ScanChain()) >= len(ReadChain()) {
		t.Errorf("Scan chain should be narrower than read chain")
	}
	if ScanChain()[0].Name != "utf-8" {
		t.Errorf("Scan chain must try utf-8 first")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	text, err := ReadFile(path, ReadChain())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if text != "line one\nline two\n" {
		t.Errorf("Unexpected content: %q", text)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), ReadChain())
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if errors.CodeOf(err) != errors.NotFound {
		t.Errorf("Expected NOT_FOUND, got %s", errors.CodeOf(err))
	}
}
