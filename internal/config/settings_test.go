package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	. "github.com/cp-helper/judge/internal/config"
	"github.com/cp-helper/judge/internal/problem"
	"github.com/cp-helper/judge/internal/render"
	pkgErr "github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/tests"
)

func TestLoadOrCreateSettings_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "judge.yaml")

	s, err := LoadOrCreateSettings(path)
	if err != nil {
		t.Fatalf("LoadOrCreateSettings failed: %v", err)
	}
	if !reflect.DeepEqual(s, DefaultSettings()) {
		t.Fatalf("expected default settings, got %+v", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected settings file to be written: %v", err)
	}

	again, err := LoadOrCreateSettings(path)
	if err != nil {
		t.Fatalf("reloading failed: %v", err)
	}
	if !reflect.DeepEqual(again, s) {
		t.Fatalf("written defaults do not load back identically:\n%+v\n%+v", again, s)
	}
}

func TestLoadOrCreateSettings_FillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := tests.WriteFile(t, dir, "judge.yaml", `
author: tourist
include:
  lib: lib
languages:
  py:
    source_file: sol.py
    run_cmd: python3
    run_args: sol.py
language: py
`)

	s, err := LoadOrCreateSettings(path)
	if err != nil {
		t.Fatalf("LoadOrCreateSettings failed: %v", err)
	}
	defaults := DefaultSettings()
	if s.Author != "tourist" || s.Language != "py" || s.Include["lib"] != "lib" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.Code.LibCheckRegex != defaults.Code.LibCheckRegex || s.Code.Modifier != defaults.Code.Modifier {
		t.Fatalf("expected code defaults to be filled, got %+v", s.Code)
	}
}

func TestLoadOrCreateSettings_InvalidYAML(t *testing.T) {
	path := tests.WriteFile(t, t.TempDir(), "judge.yaml", "author: [unterminated")
	if _, err := LoadOrCreateSettings(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSettingsTarget(t *testing.T) {
	s := DefaultSettings()
	s.Languages["cpp"] = LanguageSettings{
		SourceFile:   "main.cpp",
		CompilerCmd:  "g++",
		CompilerArgs: `-O2 -DNAME="two words" -o main main.cpp`,
		RunCmd:       "./main",
	}

	target, err := s.Target("")
	if err != nil {
		t.Fatalf("Target failed: %v", err)
	}
	if target.Name != "cpp" || !target.RequiresCompilation() {
		t.Fatalf("unexpected target %+v", target)
	}
	want := []string{"-O2", "-DNAME=two words", "-o", "main", "main.cpp"}
	if !reflect.DeepEqual(target.CompileArgs, want) {
		t.Fatalf("unexpected compile args %q", target.CompileArgs)
	}

	py, err := s.Target("python")
	if err != nil {
		t.Fatalf("Target(python) failed: %v", err)
	}
	if py.RequiresCompilation() || !reflect.DeepEqual(py.RunArgs, []string{"main.py"}) {
		t.Fatalf("unexpected python target %+v", py)
	}
}

func TestSettingsTarget_Errors(t *testing.T) {
	s := DefaultSettings()
	if _, err := s.Target("cobol"); !errors.Is(err, pkgErr.ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}

	s.Languages["broken"] = LanguageSettings{SourceFile: "a.sh"}
	if _, err := s.Target("broken"); !errors.Is(err, pkgErr.ErrEmptyRunCommand) {
		t.Fatalf("expected ErrEmptyRunCommand, got %v", err)
	}

	s.Languages["quotes"] = LanguageSettings{SourceFile: "a.sh", RunCmd: "sh", RunArgs: `"unterminated`}
	if _, err := s.Target("quotes"); err == nil {
		t.Fatalf("expected error for unbalanced quotes")
	}
}

func TestModifierFor(t *testing.T) {
	s := DefaultSettings()
	if s.ModifierFor("cpp") != s.Code.Modifier {
		t.Fatalf("cpp should use the shared modifier")
	}
	if s.ModifierFor("rust") == s.Code.Modifier {
		t.Fatalf("rust should use its own modifier")
	}
	if s.ModifierFor("unknown") != s.Code.Modifier {
		t.Fatalf("unknown languages fall back to the shared modifier")
	}
}

func TestFileName(t *testing.T) {
	s := DefaultSettings()
	p := &problem.Problem{Name: "A. Watermelon", URL: "https://codeforces.com/problemset/problem/4/A"}

	name, err := s.FileName(render.NewRenderer(), p)
	if err != nil {
		t.Fatalf("FileName failed: %v", err)
	}
	if name != "4a-a-watermelon.cpp" {
		t.Fatalf("unexpected file name %q", name)
	}

	s.Code.Filename = "  solutions/{{short_name}}/../{{kebab title}}.rs \n"
	name, err = s.FileName(render.NewRenderer(), p)
	if err != nil {
		t.Fatalf("FileName failed: %v", err)
	}
	if name != filepath.Join("solutions", "4A", "a-watermelon.rs") {
		t.Fatalf("unexpected file name %q", name)
	}
}

func TestSourceTemplate(t *testing.T) {
	dir := t.TempDir()
	tests.WriteFile(t, dir, "template.cpp", "// {{title}} by {{author}}\nint main() {}\n")
	s := DefaultSettings()
	s.Author = "me"
	p := &problem.Problem{Name: "Sum"}

	out, err := s.SourceTemplate(render.NewRenderer(), dir, p)
	if err != nil || out != "" {
		t.Fatalf("no template configured should give empty source, got %q, %v", out, err)
	}

	s.Code.Template = "template.cpp"
	out, err = s.SourceTemplate(render.NewRenderer(), dir, p)
	if err != nil {
		t.Fatalf("SourceTemplate failed: %v", err)
	}
	if out != "// Sum by me\nint main() {}\n" {
		t.Fatalf("unexpected source %q", out)
	}

	s.Code.Template = "missing.cpp"
	out, err = s.SourceTemplate(render.NewRenderer(), dir, p)
	if err != nil || out != "" {
		t.Fatalf("missing template should give empty source, got %q, %v", out, err)
	}
}
