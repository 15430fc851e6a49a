package languages

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cp-helper/judge/pkg/errors"
)

// ExecutionTarget describes how to build and run one language. It is static
// configuration; installed toolchains are never detected.
type ExecutionTarget struct {
	Name              string
	SourceFile        string
	CompileCommand    string
	CompileArgs       []string
	RunCommand        string
	RunArgs           []string
	RunCommandWindows string
	// WorkingDirectory is where compile and run commands execute. The judge
	// binds it to the session directory.
	WorkingDirectory string
}

// RequiresCompilation reports whether the target declares a compile step.
func (t ExecutionTarget) RequiresCompilation() bool {
	return strings.TrimSpace(t.CompileCommand) != ""
}

// RunCommandFor returns the run command for the given GOOS, honouring the
// windows override when present.
func (t ExecutionTarget) RunCommandFor(goos string) string {
	if goos == "windows" && t.RunCommandWindows != "" {
		return t.RunCommandWindows
	}
	return t.RunCommand
}

func (t ExecutionTarget) Validate() error {
	if strings.TrimSpace(t.RunCommand) == "" && strings.TrimSpace(t.RunCommandWindows) == "" {
		return fmt.Errorf("%w: language %q", errors.ErrEmptyRunCommand, t.Name)
	}
	return ValidateSourceFile(t.SourceFile)
}

// ValidateSourceFile rejects names that would escape the session directory.
func ValidateSourceFile(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", errors.ErrInvalidSourceFile)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("%w: %q is absolute", errors.ErrInvalidSourceFile, name)
	}
	clean := filepath.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q leaves the working directory", errors.ErrInvalidSourceFile, name)
	}
	return nil
}

// ResolveCommand makes a relative command containing a path separator
// relative to dir. A bare name is resolved under dir when a regular file of
// that name exists there (main.exe after a compile) and is otherwise left for
// PATH lookup.
func ResolveCommand(dir, command string) string {
	if command == "" || filepath.IsAbs(command) {
		return command
	}
	if strings.ContainsRune(command, '/') || strings.ContainsRune(command, filepath.Separator) {
		return filepath.Join(dir, command)
	}
	if dir != "" {
		local := filepath.Join(dir, command)
		if info, err := os.Stat(local); err == nil && info.Mode().IsRegular() {
			return local
		}
	}
	return command
}
