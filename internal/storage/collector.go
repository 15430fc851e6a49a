package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/stages/resolver"
	"go.uber.org/zap"
)

// FileCollector loads library candidates and solution sources from disk.
type FileCollector interface {
	CollectLibraries(include map[string]string) ([]resolver.LibraryFile, error)
	ReadSource(path string) (string, error)
}

type fileCollector struct {
	workspace string
	logger    *zap.SugaredLogger
}

func NewFileCollector(workspace string) FileCollector {
	return &fileCollector{
		workspace: workspace,
		logger:    logger.NewNamedLogger("collector"),
	}
}

// ResolvePath joins a relative path onto the workspace.
func ResolvePath(workspace, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspace, path)
}

// CollectLibraries reads every include entry. A directory contributes each
// regular file inside it keyed by its file stem; a file is keyed by its
// include key. Bodies are returned code-block extracted and sorted by name.
//
// Name clashes resolve the same way on every call: a file entry beats a
// directory stem, and among directory stems the include key that sorts first
// wins. Losers are logged and dropped.
func (fc *fileCollector) CollectLibraries(include map[string]string) ([]resolver.LibraryFile, error) {
	keys := make([]string, 0, len(include))
	for key := range include {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	files := make(map[string]string)
	var dirs []string
	for _, key := range keys {
		path := ResolvePath(fc.workspace, include[key])
		info, err := os.Stat(path)
		if err != nil {
			fc.logger.Warnf("Skipping include %q: %s", key, err)
			continue
		}
		if info.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		files[key] = path
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read include directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			path := filepath.Join(dir, entry.Name())
			if prev, ok := files[stem]; ok {
				fc.logger.Warnf("Library %q from %s shadowed by %s", stem, path, prev)
				continue
			}
			files[stem] = path
		}
	}

	libraries := make([]resolver.LibraryFile, 0, len(files))
	for name, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		libraries = append(libraries, resolver.LibraryFile{
			Name: name,
			Body: ExtractCodeBlock(string(content)),
		})
	}
	sort.Slice(libraries, func(i, j int) bool { return libraries[i].Name < libraries[j].Name })

	fc.logger.Debugf("Collected %d libraries", len(libraries))
	return libraries, nil
}

func (fc *fileCollector) ReadSource(path string) (string, error) {
	content, err := os.ReadFile(ResolvePath(fc.workspace, path))
	if err != nil {
		fc.logger.Errorf("Failed to read source %s: %s", path, err)
		return "", err
	}
	return string(content), nil
}

// ExtractCodeBlock returns the body of the first fenced code block in text,
// or text unchanged when it has none. Solutions kept in markdown notes are
// judged by their code only.
func ExtractCodeBlock(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			start = i
			break
		}
	}
	if start < 0 {
		return text
	}

	for end := start + 1; end < len(lines); end++ {
		if strings.TrimSpace(lines[end]) == "```" {
			return strings.Join(lines[start+1:end], "\n")
		}
	}
	return text
}
