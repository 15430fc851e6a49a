package packager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/render"
	"github.com/cp-helper/judge/internal/stages/resolver"
	"github.com/cp-helper/judge/pkg/constants"
	"github.com/cp-helper/judge/pkg/languages"
	"github.com/cp-helper/judge/utils"
	"go.uber.org/zap"
)

type Packager interface {
	// Bundle merges sourceBody with the ordered libraries through the merge
	// template. Libraries must already be in dependency order.
	Bundle(sourceBody string, ordered []resolver.LibraryFile) (string, error)
	// PrepareSolutionPackage creates the session working directory and
	// writes the bundled source into it as target.SourceFile.
	PrepareSolutionPackage(target languages.ExecutionTarget, bundledSource, sessionID string) (*TaskDirConfig, error)
	Cleanup(dc *TaskDirConfig) error
}

type packager struct {
	workRoot      string
	mergeTemplate string
	renderer      render.Renderer
	logger        *zap.SugaredLogger
}

type TaskDirConfig struct {
	TmpDirPath     string
	SourceFilePath string
	SessionID      string
}

// NewPackager uses workRoot as the parent of session directories. An empty
// workRoot means the system temp directory.
func NewPackager(workRoot, mergeTemplate string, renderer render.Renderer) Packager {
	if workRoot == "" {
		workRoot = os.TempDir()
	}
	return &packager{
		workRoot:      workRoot,
		mergeTemplate: mergeTemplate,
		renderer:      renderer,
		logger:        logger.NewNamedLogger("packager"),
	}
}

func (p *packager) Bundle(sourceBody string, ordered []resolver.LibraryFile) (string, error) {
	// code is the solution, lib_files lists libraries in bundle order and
	// libs indexes them by name.
	libFiles := make([]map[string]string, 0, len(ordered))
	libs := make(map[string]string, len(ordered))
	for _, lib := range ordered {
		libFiles = append(libFiles, map[string]string{"name": lib.Name, "body": lib.Body})
		libs[lib.Name] = lib.Body
	}
	ctx := map[string]interface{}{
		"code":      sourceBody,
		"lib_files": libFiles,
		"libs":      libs,
	}

	out, err := p.renderer.Render(p.mergeTemplate, ctx)
	if err != nil {
		p.logger.Errorf("Failed to render bundle: %s", err)
		return "", err
	}
	p.logger.Infof("Bundled %d libraries", len(ordered))
	return out, nil
}

func (p *packager) PrepareSolutionPackage(
	target languages.ExecutionTarget,
	bundledSource string,
	sessionID string,
) (*TaskDirConfig, error) {
	if err := languages.ValidateSourceFile(target.SourceFile); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.workRoot, 0755); err != nil {
		p.logger.Errorf("Failed to create work root %s: %s", p.workRoot, err)
		return nil, err
	}

	basePath := filepath.Join(p.workRoot, constants.WorkDirPrefix+sessionID)
	// Mkdir rather than MkdirAll so that two sessions never share a directory.
	if err := os.Mkdir(basePath, 0755); err != nil {
		p.logger.Errorf("Failed to create session directory %s: %s", basePath, err)
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	sourcePath := filepath.Join(basePath, target.SourceFile)
	if err := utils.WriteFile(sourcePath, bundledSource); err != nil {
		p.logger.Errorf("Failed to write source %s: %s", sourcePath, err)
		_ = utils.RemoveIO(basePath, true, true)
		return nil, err
	}

	p.logger.Infof("Prepared solution package at %s [SessionID: %s]", basePath, sessionID)
	return &TaskDirConfig{
		TmpDirPath:     basePath,
		SourceFilePath: sourcePath,
		SessionID:      sessionID,
	}, nil
}

func (p *packager) Cleanup(dc *TaskDirConfig) error {
	if dc == nil {
		return nil
	}
	if err := utils.RemoveIO(dc.TmpDirPath, true, false); err != nil {
		p.logger.Errorf("Failed to remove %s: %s [SessionID: %s]", dc.TmpDirPath, err, dc.SessionID)
		return fmt.Errorf("failed to clean up session directory: %w", err)
	}
	return nil
}
