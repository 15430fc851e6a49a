package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/problem"
	"github.com/cp-helper/judge/internal/render"
	"github.com/cp-helper/judge/internal/storage"
	"github.com/cp-helper/judge/pkg/constants"
	"github.com/cp-helper/judge/pkg/errors"
	"github.com/cp-helper/judge/pkg/languages"
	"github.com/cp-helper/judge/utils"
	"github.com/google/shlex"
	"gopkg.in/yaml.v3"
)

const (
	defaultFileNameTemplate = `{{#if url}}{{lower (regex_capture "([0-9]+)/([A-Za-z0-9]+)/?$" url 1)}}{{lower (regex_capture "([0-9]+)/([A-Za-z0-9]+)/?$" url 2)}}-{{/if}}{{kebab title}}.cpp`

	defaultModifier = `{{#each lib_files}}
// library: {{name}}
{{{body}}}
{{/each}}
{{{code}}}
`

	rustModifier = `{{{code}}}
{{#each lib_files}}
mod {{name}} {
{{{body}}}
}
{{/each}}
`

	defaultLibCheckRegex = `use.*{{name}}(::|;)`
)

// Settings is the per-workspace settings file.
type Settings struct {
	Author    string                      `yaml:"author"`
	Code      CodeSettings                `yaml:"code"`
	Include   map[string]string           `yaml:"include"`
	Editor    string                      `yaml:"editor"`
	Toggle    ToggleSettings              `yaml:"toggle"`
	Language  string                      `yaml:"language"`
	Languages map[string]LanguageSettings `yaml:"languages"`
}

type CodeSettings struct {
	// Filename is a template rendered with the problem to name the source file.
	Filename string `yaml:"filename"`
	// Template is the path of a file new sources are created from.
	Template string `yaml:"template"`
	// Modifier is the merge template producing the bundled source.
	Modifier string `yaml:"modifier"`
	// LibCheckRegex is a template with {{name}} producing the reference regex.
	LibCheckRegex string `yaml:"lib_check_regex"`
}

type ToggleSettings struct {
	CreateFile bool `yaml:"create_file"`
	RunOnSave  bool `yaml:"run_on_save"`
	SubmitOnAC bool `yaml:"submit_on_ac"`
}

// LanguageSettings holds command lines as shell-like strings.
type LanguageSettings struct {
	SourceFile   string `yaml:"source_file"`
	CompilerCmd  string `yaml:"compiler_cmd,omitempty"`
	CompilerArgs string `yaml:"compiler_args,omitempty"`
	RunCmd       string `yaml:"run_cmd"`
	RunCmdWin    string `yaml:"run_cmd_win,omitempty"`
	RunArgs      string `yaml:"run_args,omitempty"`
	// Modifier overrides Code.Modifier for this language.
	Modifier string `yaml:"modifier,omitempty"`
	CfID     int    `yaml:"cf_id,omitempty"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Author: "",
		Code: CodeSettings{
			Filename:      defaultFileNameTemplate,
			Template:      "",
			Modifier:      defaultModifier,
			LibCheckRegex: defaultLibCheckRegex,
		},
		Include: map[string]string{},
		Editor:  "code",
		Toggle: ToggleSettings{
			CreateFile: true,
			RunOnSave:  true,
			SubmitOnAC: false,
		},
		Language: constants.DefaultLanguage,
		Languages: map[string]LanguageSettings{
			"cpp": {
				SourceFile:   "main.cpp",
				CompilerCmd:  "g++",
				CompilerArgs: "-O2 -std=c++17 -o main main.cpp",
				RunCmd:       "./main",
				RunCmdWin:    "main.exe",
				CfID:         54,
			},
			"rust": {
				SourceFile:   "main.rs",
				CompilerCmd:  "rustc",
				CompilerArgs: "-O --edition 2021 -o main main.rs",
				RunCmd:       "./main",
				RunCmdWin:    "main.exe",
				Modifier:     rustModifier,
				CfID:         75,
			},
			"python": {
				SourceFile: "main.py",
				RunCmd:     "python3",
				RunCmdWin:  "python",
				RunArgs:    "main.py",
				CfID:       31,
			},
		},
	}
}

// LoadOrCreateSettings reads the settings file at path. When it does not
// exist the defaults are written there and returned.
func LoadOrCreateSettings(path string) (*Settings, error) {
	logger := logger.NewNamedLogger("settings")

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
		settings := DefaultSettings()
		out, err := yaml.Marshal(settings)
		if err != nil {
			return nil, fmt.Errorf("error serializing default settings: %w", err)
		}
		if err := utils.WriteFile(path, string(out)); err != nil {
			return nil, fmt.Errorf("error creating %s: %w", path, err)
		}
		logger.Infof("Created default settings at %s", path)
		return settings, nil
	}

	settings := &Settings{}
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	settings.fillDefaults()
	return settings, nil
}

func (s *Settings) fillDefaults() {
	defaults := DefaultSettings()
	if s.Code.Filename == "" {
		s.Code.Filename = defaults.Code.Filename
	}
	if s.Code.Modifier == "" {
		s.Code.Modifier = defaults.Code.Modifier
	}
	if s.Code.LibCheckRegex == "" {
		s.Code.LibCheckRegex = defaults.Code.LibCheckRegex
	}
	if s.Language == "" {
		s.Language = defaults.Language
	}
	if len(s.Languages) == 0 {
		s.Languages = defaults.Languages
	}
	if s.Include == nil {
		s.Include = map[string]string{}
	}
}

// ResolveLanguage returns name, or the selected language when name is empty.
func (s *Settings) ResolveLanguage(name string) (string, LanguageSettings, error) {
	if name == "" {
		name = s.Language
	}
	lang, ok := s.Languages[name]
	if !ok {
		return "", LanguageSettings{}, fmt.Errorf("%w: %q", errors.ErrUnknownLanguage, name)
	}
	return name, lang, nil
}

// Target builds the execution target for a language.
func (s *Settings) Target(name string) (languages.ExecutionTarget, error) {
	name, lang, err := s.ResolveLanguage(name)
	if err != nil {
		return languages.ExecutionTarget{}, err
	}

	compileArgs, err := splitArgs(lang.CompilerArgs)
	if err != nil {
		return languages.ExecutionTarget{}, fmt.Errorf("invalid compiler_args for %s: %w", name, err)
	}
	runArgs, err := splitArgs(lang.RunArgs)
	if err != nil {
		return languages.ExecutionTarget{}, fmt.Errorf("invalid run_args for %s: %w", name, err)
	}

	target := languages.ExecutionTarget{
		Name:              name,
		SourceFile:        lang.SourceFile,
		CompileCommand:    lang.CompilerCmd,
		CompileArgs:       compileArgs,
		RunCommand:        lang.RunCmd,
		RunArgs:           runArgs,
		RunCommandWindows: lang.RunCmdWin,
	}
	if err := target.Validate(); err != nil {
		return languages.ExecutionTarget{}, err
	}
	return target, nil
}

// ModifierFor returns the merge template for a language.
func (s *Settings) ModifierFor(name string) string {
	if _, lang, err := s.ResolveLanguage(name); err == nil && lang.Modifier != "" {
		return lang.Modifier
	}
	return s.Code.Modifier
}

// FileName renders the file name template for p. The result is trimmed and
// every path element sanitized.
func (s *Settings) FileName(r render.Renderer, p *problem.Problem) (string, error) {
	name, err := r.Render(s.Code.Filename, p.TemplateContext(s.Author))
	if err != nil {
		return "", err
	}
	return utils.SanitizeRelativePath(strings.TrimSpace(name)), nil
}

// SourceTemplate returns the rendered contents of the new-source template,
// or an empty string when none is configured or it cannot be read.
func (s *Settings) SourceTemplate(r render.Renderer, workspace string, p *problem.Problem) (string, error) {
	if s.Code.Template == "" {
		return "", nil
	}
	content, err := os.ReadFile(storage.ResolvePath(workspace, s.Code.Template))
	if err != nil {
		logger.NewNamedLogger("settings").Warnf("Error reading template file: %s", err)
		return "", nil
	}
	return r.Render(string(content), p.TemplateContext(s.Author))
}

func splitArgs(args string) ([]string, error) {
	if strings.TrimSpace(args) == "" {
		return nil, nil
	}
	return shlex.Split(args)
}
