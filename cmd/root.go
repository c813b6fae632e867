/*
Package cmd implements the command-line interface for the study assistant.
It provides the interactive terminal UI and a one-shot command for scripts.
*/
package cmd

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/theapemachine/study-assistant/pkg/client"
	"github.com/theapemachine/study-assistant/pkg/logging"
	"github.com/theapemachine/study-assistant/pkg/study"
	"github.com/theapemachine/study-assistant/pkg/telemetry"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the service,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

/*
rootCmd represents the base command when called without any subcommands
*/
var (
	projectName = "study-assistant"
	version     = "0.1.0"
	cfgFile     string
	apiURL      string

	rootCmd = &cobra.Command{
		Use:     projectName,
		Short:   "A terminal study assistant backed by a content generation service",
		Long:    longRoot,
		Version: version,
	}
)

/*
Execute is the main entry point for the CLI. It initializes the root command
and executes it.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file, relative to $HOME/."+projectName+" unless absolute",
	)

	rootCmd.PersistentFlags().StringVar(
		&apiURL,
		"api-url",
		"",
		"base URL of the generation service (overrides endpoint.url)",
	)
}

/*
initConfig loads .env, writes the default config file to the user's home
directory if it doesn't exist, and then reads it.
*/
func initConfig() {
	var err error

	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not load .env", "error", err)
	}

	path, err := configPath()
	if err != nil {
		log.Fatal("failed to locate config", "error", err)
	}

	if err = writeConfig(path); err != nil {
		log.Fatal("failed to write default config", "error", err)
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yml")

	if err = viper.ReadInConfig(); err != nil {
		log.Fatal("failed to read config", "error", err)
	}

	_ = viper.BindEnv("endpoint.url", "STUDY_API_URL", "NEXT_PUBLIC_API_URL")
	_ = viper.BindEnv("endpoint.timeout", "STUDY_API_TIMEOUT")
	_ = viper.BindEnv("log.level", "STUDY_LOG_LEVEL")

	if apiURL != "" {
		viper.Set("endpoint.url", apiURL)
	}
}

// configDir is the per-user directory holding the config and log files.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}

	return filepath.Join(home, "."+projectName), nil
}

/*
configPath resolves the --config flag. An absolute path is used as given,
anything else is taken relative to the config directory.
*/
func configPath() (string, error) {
	if filepath.IsAbs(cfgFile) {
		return cfgFile, nil
	}

	dir, err := configDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, cfgFile), nil
}

/*
writeConfig writes the embedded default config to path unless a file is
already there.
*/
func writeConfig(path string) (err error) {
	var (
		fh  fs.File
		buf bytes.Buffer
	)

	if CheckFileExists(path) {
		return nil
	}

	if err = os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if fh, err = embedded.Open("cfg/config.yml"); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}
	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote config file", "path", path)
	return nil
}

func CheckFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

/*
startDiagnostics sends logs to the configured file and starts tracing when
enabled. The returned function flushes both.
*/
func startDiagnostics(ctx context.Context) func() {
	logPath := viper.GetString("log.file")
	if logPath == "" {
		dir, err := configDir()
		if err != nil {
			log.Fatal("failed to locate log directory", "error", err)
		}
		logPath = filepath.Join(dir, projectName+".log")
	}

	if err := logging.Init(logPath, viper.GetString("log.level")); err != nil {
		log.Warn("logging to stderr", "error", err)
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        viper.GetBool("telemetry.enabled"),
		ServiceName:    viper.GetString("telemetry.service"),
		ServiceVersion: version,
		OTLPEndpoint:   viper.GetString("telemetry.endpoint"),
	})
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}

	return func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("failed to flush traces", "error", err)
		}
		logging.Close()
	}
}

// newSession wires a session to the configured generation endpoint.
func newSession() *study.Session {
	generator := client.NewGenerateClient(
		viper.GetString("endpoint.url"),
		client.WithTimeout(viper.GetDuration("endpoint.timeout")),
	)

	session := study.NewSession(generator)
	log.Info("session started", "session", session.ID, "endpoint", generator.URL())

	return session
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
study-assistant asks a content generation service to explain a concept,
write a quiz, or produce study notes for any topic, and shows the answer
in your terminal.
`
