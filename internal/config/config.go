package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/cp-helper/judge/internal/logger"
	"github.com/cp-helper/judge/pkg/constants"
	"github.com/joho/godotenv"
)

type Config struct {
	Workspace         string
	SettingsFile      string
	ProblemFile       string
	WorkDir           string
	CompileTimeout    time.Duration
	RelayHost         string
	RelayPort         string
	RabbitMQURL       string
	ProgressQueueName string
	PublishChanSize   int
}

func NewConfig() *Config {
	logger := logger.NewNamedLogger("config")

	_, err := os.Stat(".env")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Fatalf("failed to stat .env file with error: %v", err)
		}
	} else {
		err = godotenv.Load(".env")
		if err != nil {
			logger.Fatalf("failed to load .env file with error: %v", err)
		}
	}

	workspace, settingsFile, problemFile := workspaceConfig()
	workDir, compileTimeout := judgeConfig()
	relayHost, relayPort := relayConfig()
	rabbitmqURL, queueName, publishChanSize := rabbitmqConfig()

	return &Config{
		Workspace:         workspace,
		SettingsFile:      settingsFile,
		ProblemFile:       problemFile,
		WorkDir:           workDir,
		CompileTimeout:    compileTimeout,
		RelayHost:         relayHost,
		RelayPort:         relayPort,
		RabbitMQURL:       rabbitmqURL,
		ProgressQueueName: queueName,
		PublishChanSize:   publishChanSize,
	}
}

// RelayAddress is the host:port the relay listens on.
func (c *Config) RelayAddress() string {
	return c.RelayHost + ":" + c.RelayPort
}

// RelayURL is the base URL clients use to reach the relay.
func (c *Config) RelayURL() string {
	return "http://" + c.RelayAddress()
}

func workspaceConfig() (string, string, string) {
	logger := logger.NewNamedLogger("config")

	workspace := os.Getenv("JUDGE_WORKSPACE")
	if workspace == "" {
		workspace = constants.DefaultWorkspace
		logger.Debugf("JUDGE_WORKSPACE is not set, using default value %s", constants.DefaultWorkspace)
	}
	settingsFile := os.Getenv("JUDGE_SETTINGS_FILE")
	if settingsFile == "" {
		settingsFile = constants.DefaultSettingsFileName
		logger.Debugf("JUDGE_SETTINGS_FILE is not set, using default value %s", constants.DefaultSettingsFileName)
	}
	problemFile := os.Getenv("JUDGE_PROBLEM_FILE")
	if problemFile == "" {
		problemFile = constants.DefaultProblemFileName
		logger.Debugf("JUDGE_PROBLEM_FILE is not set, using default value %s", constants.DefaultProblemFileName)
	}

	return workspace, settingsFile, problemFile
}

func judgeConfig() (string, time.Duration) {
	logger := logger.NewNamedLogger("config")

	// An empty work dir means the system temp directory.
	workDir := os.Getenv("JUDGE_WORK_DIR")

	compileTimeoutSec := int64(constants.DefaultCompileTimeoutSec)
	compileTimeoutStr := os.Getenv("COMPILE_TIMEOUT_SEC")
	if compileTimeoutStr == "" {
		logger.Debugf("COMPILE_TIMEOUT_SEC is not set, using default value %d", constants.DefaultCompileTimeoutSec)
	} else {
		var err error
		compileTimeoutSec, err = strconv.ParseInt(compileTimeoutStr, 10, 32)
		if err != nil || compileTimeoutSec <= 0 {
			logger.Fatalf("failed to parse COMPILE_TIMEOUT_SEC %q: %v", compileTimeoutStr, err)
		}
	}

	return workDir, time.Duration(compileTimeoutSec) * time.Second
}

func relayConfig() (string, string) {
	logger := logger.NewNamedLogger("config")

	relayHost := os.Getenv("RELAY_HOST")
	if relayHost == "" {
		relayHost = constants.DefaultRelayHost
		logger.Debugf("RELAY_HOST is not set, using default value %s", constants.DefaultRelayHost)
	}
	relayPortStr := os.Getenv("RELAY_PORT")
	if relayPortStr == "" {
		relayPortStr = constants.DefaultRelayPort
		logger.Debugf("RELAY_PORT is not set, using default value %s", constants.DefaultRelayPort)
	}
	if _, err := strconv.ParseUint(relayPortStr, 10, 16); err != nil {
		logger.Fatalf("failed to parse RELAY_PORT with error: %v", err)
	}

	return relayHost, relayPortStr
}

// rabbitmqConfig returns an empty URL when progress publishing is disabled.
func rabbitmqConfig() (string, string, int) {
	logger := logger.NewNamedLogger("config")

	rabbitmqURL := os.Getenv("RABBITMQ_URL")

	queueName := os.Getenv("PROGRESS_QUEUE_NAME")
	if queueName == "" {
		queueName = constants.DefaultProgressQueueName
		if rabbitmqURL != "" {
			logger.Warnf("PROGRESS_QUEUE_NAME is not set, using default value %s", constants.DefaultProgressQueueName)
		}
	}

	publishChanSize := constants.DefaultPublishChanSize
	publishChanSizeStr := os.Getenv("RABBITMQ_PUBLISH_CHAN_SIZE")
	if publishChanSizeStr != "" {
		var err error
		publishChanSize, err = strconv.Atoi(publishChanSizeStr)
		if err != nil {
			logger.Fatalf("failed to parse RABBITMQ_PUBLISH_CHAN_SIZE with error: %v", err)
		}
	}

	return rabbitmqURL, queueName, publishChanSize
}
