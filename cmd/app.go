package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cp-helper/judge/internal/config"
	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/internal/pipeline"
	"github.com/cp-helper/judge/internal/problem"
	"github.com/cp-helper/judge/internal/rabbitmq"
	"github.com/cp-helper/judge/internal/rabbitmq/channel"
	"github.com/cp-helper/judge/internal/rabbitmq/responder"
	"github.com/cp-helper/judge/internal/relay"
	"github.com/cp-helper/judge/internal/render"
	"github.com/cp-helper/judge/internal/stages/compiler"
	"github.com/cp-helper/judge/internal/stages/executor"
	"github.com/cp-helper/judge/internal/stages/packager"
	"github.com/cp-helper/judge/internal/stages/resolver"
	"github.com/cp-helper/judge/internal/stages/verifier"
	"github.com/cp-helper/judge/internal/storage"
	"github.com/cp-helper/judge/pkg/languages"
	"github.com/cp-helper/judge/pkg/messages"
	"github.com/cp-helper/judge/pkg/solution"
	"github.com/cp-helper/judge/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// app holds what every command loads from the workspace.
type app struct {
	cfg       *config.Config
	settings  *config.Settings
	renderer  render.Renderer
	collector storage.FileCollector
	logger    *zap.SugaredLogger

	conn      *amqp.Connection
	channel   channel.Channel
	responder responder.Responder
}

func newApp() (*app, error) {
	cfg := config.NewConfig()

	settings, err := config.LoadOrCreateSettings(storage.ResolvePath(cfg.Workspace, cfg.SettingsFile))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		settings:  settings,
		renderer:  render.NewRenderer(),
		collector: storage.NewFileCollector(cfg.Workspace),
		logger:    logger.NewNamedLogger("main"),
	}, nil
}

func (a *app) close() {
	if a.responder != nil {
		if err := a.responder.Close(); err != nil {
			a.logger.Errorf("Failed to close responder: %s", err)
		}
	}
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			a.logger.Warnf("Failed to close RabbitMQ channel: %s", err)
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Errorf("Failed to close RabbitMQ connection: %s", err)
		}
	}
}

func (a *app) problemPath() string {
	return storage.ResolvePath(a.cfg.Workspace, a.cfg.ProblemFile)
}

func (a *app) loadProblem() (*problem.Problem, error) {
	return problem.Load(a.problemPath())
}

// solutionPath is the workspace relative source of p, or the --file flag.
func (a *app) solutionPath(p *problem.Problem) (string, error) {
	if sourceFile != "" {
		return sourceFile, nil
	}
	return a.settings.FileName(a.renderer, p)
}

func (a *app) newPackager(target languages.ExecutionTarget) packager.Packager {
	return packager.NewPackager(a.cfg.WorkDir, a.settings.ModifierFor(target.Name), a.renderer)
}

// bundle reads the solution at path, resolves the libraries it uses and
// merges them into one source for the selected language.
func (a *app) bundle(path string) (string, languages.ExecutionTarget, error) {
	target, err := a.settings.Target(language)
	if err != nil {
		return "", languages.ExecutionTarget{}, err
	}

	source, err := a.collector.ReadSource(path)
	if err != nil {
		return "", target, err
	}
	source = storage.ExtractCodeBlock(source)

	libraries, err := a.collector.CollectLibraries(a.settings.Include)
	if err != nil {
		return "", target, err
	}

	res := resolver.NewResolver(resolver.NewRegexDetector(a.settings.Code.LibCheckRegex, a.renderer))
	resolution, err := res.Resolve(source, libraries)
	if err != nil {
		return "", target, err
	}

	byName := make(map[string]resolver.LibraryFile, len(libraries))
	for _, lib := range libraries {
		byName[lib.Name] = lib
	}
	ordered := make([]resolver.LibraryFile, 0, len(resolution.Sorted))
	for _, name := range resolution.BundleOrder() {
		ordered = append(ordered, byName[name])
	}
	a.logger.Debugf("Bundling %s with libraries %v", path, resolution.BundleOrder())

	bundled, err := a.newPackager(target).Bundle(source, ordered)
	if err != nil {
		return "", target, err
	}
	return bundled, target, nil
}

// newJudge wires a judge for target. Progress goes to the log and, when
// RABBITMQ_URL is set, to the progress queue.
func (a *app) newJudge(target languages.ExecutionTarget) (pipeline.Judge, error) {
	notifiers := pipeline.MultiNotifier{
		pipeline.NewLogNotifier(logger.NewNamedLogger("progress")),
	}

	if a.cfg.RabbitMQURL != "" && a.responder == nil {
		conn, err := rabbitmq.NewRabbitMqConnection(a.cfg)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.NewRabbitMQChannel(conn, a.cfg.ProgressQueueName)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		a.conn = conn
		a.channel = ch
		a.responder = responder.NewResponder(ch, a.cfg.ProgressQueueName, a.cfg.PublishChanSize)
	}
	if a.responder != nil {
		notifiers = append(notifiers, a.responder)
	}

	return pipeline.NewJudge(
		compiler.NewCompiler(a.cfg.CompileTimeout),
		a.newPackager(target),
		executor.NewExecutor(verifier.NewDefaultVerifier()),
		notifiers,
	), nil
}

func newRequest(target languages.ExecutionTarget, bundled string, p *problem.Problem) pipeline.Request {
	return pipeline.Request{
		Target:    target,
		Source:    bundled,
		Tests:     p.Tests,
		TimeLimit: p.TimeLimitDuration(),
	}
}

// report prints the outcome of a session and submits accepted solutions
// when submit_on_ac is on.
func (a *app) report(ctx context.Context, p *problem.Problem, path, bundled string, verdicts []solution.Verdict, err error) error {
	if err != nil {
		if a.responder != nil {
			a.responder.PublishSessionError(pipeline.SessionIDOf(err), err)
		}
		return fmt.Errorf("judge session failed: %w", err)
	}

	printVerdicts(stdout, verdicts)

	if !solution.AllAccepted(verdicts) || !a.settings.Toggle.SubmitOnAC {
		return nil
	}
	return a.submit(ctx, p, path, bundled)
}

func (a *app) submit(ctx context.Context, p *problem.Problem, path, bundled string) error {
	_, lang, err := a.settings.ResolveLanguage(language)
	if err != nil {
		return err
	}

	client := relay.NewClient(a.cfg.RelayURL())
	err = client.Submit(ctx, messages.SolutionMessage{
		ProblemName: p.ShortName(),
		URL:         p.URL,
		SourceCode:  bundled,
		FileName:    utils.SanitizeFilename(filepath.Base(path)),
		LanguageID:  lang.CfID,
	})
	if err != nil {
		return fmt.Errorf("failed to submit solution: %w", err)
	}
	a.logger.Infof("Submitted %s to the relay", p.ShortName())
	return nil
}
