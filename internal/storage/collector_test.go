package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/cp-helper/judge/internal/storage"
	"github.com/cp-helper/judge/tests"
)

func TestCollectLibraries_DirectoryAndFile(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "lib/dsu.rs", "pub struct Dsu;")
	tests.WriteFile(t, dir, "lib/modint.rs", "```rust\npub struct ModInt;\n```\nnotes")
	tests.WriteFile(t, dir, "extra/fast_io.rs", "pub fn read() {}")
	if err := os.MkdirAll(filepath.Join(dir, "lib", "nested"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	fc := NewFileCollector(dir)
	libs, err := fc.CollectLibraries(map[string]string{
		"lib":  "lib",
		"io":   "extra/fast_io.rs",
		"gone": "missing/path.rs",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(libs) != 3 {
		t.Fatalf("expected 3 libraries, got %+v", libs)
	}
	wantNames := []string{"dsu", "io", "modint"}
	for i, name := range wantNames {
		if libs[i].Name != name {
			t.Fatalf("library %d = %q, want %q", i, libs[i].Name, name)
		}
	}
	if libs[2].Body != "pub struct ModInt;" {
		t.Fatalf("expected code block extraction, got %q", libs[2].Body)
	}
	if libs[1].Body != "pub fn read() {}" {
		t.Fatalf("unexpected io body %q", libs[1].Body)
	}
}

func TestCollectLibraries_NameClashIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "a/dsu.rs", "from a")
	tests.WriteFile(t, dir, "b/dsu.rs", "from b")
	tests.WriteFile(t, dir, "b/seg.rs", "seg from dir")
	tests.WriteFile(t, dir, "custom/seg.rs", "seg from file")

	fc := NewFileCollector(dir)
	include := map[string]string{
		"zz":  "b",
		"aa":  "a",
		"seg": "custom/seg.rs",
	}
	for i := 0; i < 20; i++ {
		libs, err := fc.CollectLibraries(include)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(libs) != 2 {
			t.Fatalf("expected 2 libraries, got %+v", libs)
		}
		if libs[0].Name != "dsu" || libs[0].Body != "from a" {
			t.Fatalf("expected dsu from the first sorted include key, got %+v", libs[0])
		}
		if libs[1].Name != "seg" || libs[1].Body != "seg from file" {
			t.Fatalf("expected the file entry to win over a directory stem, got %+v", libs[1])
		}
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "src/main.cpp", "int main() {}")

	fc := NewFileCollector(dir)
	got, err := fc.ReadSource("src/main.cpp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "int main() {}" {
		t.Fatalf("unexpected source %q", got)
	}
	if _, err := fc.ReadSource("nope.cpp"); err == nil {
		t.Fatalf("expected error for missing source")
	}
}

func TestExtractCodeBlock(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain source", "int main() {}\n", "int main() {}\n"},
		{"fenced", "# Notes\n```cpp\nint x;\nint y;\n```\ntrailer", "int x;\nint y;"},
		{"first block wins", "```\na\n```\n```\nb\n```", "a"},
		{"crlf", "```cpp\r\nint x;\r\n```\r\n", "int x;"},
		{"unterminated", "```cpp\nint x;", "```cpp\nint x;"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractCodeBlock(c.in); got != c.want {
				t.Fatalf("ExtractCodeBlock() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("/ws", "a/b"); got != filepath.Join("/ws", "a/b") {
		t.Fatalf("unexpected path %q", got)
	}
	if got := ResolvePath("/ws", "/abs"); got != "/abs" {
		t.Fatalf("absolute path changed: %q", got)
	}
}
