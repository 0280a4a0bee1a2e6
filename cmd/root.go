/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/vieng/internal/telemetry"
)

var version = "0.1.0"

var (
	cfgFile string
	v       = viper.New()
	cfg     Config
	logger  = slog.Default()

	closeLog         = func() error { return nil }
	cleanupTelemetry = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "vieng",
	Short: "Vietnamese to English translation and grammar analysis",
	Long: `vieng translates Vietnamese sentences into English with a neural
translation model and breaks the English down into parts of speech,
dependencies and tenses.

Use "vieng serve" to run the web page, or "vieng translate" and
"vieng analyze" from the command line.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		bindFlags(v, cmd.Flags(), flagKeys)

		var err error
		cfg, err = loadConfig(v, cfgFile)
		if err != nil {
			return err
		}

		logger, closeLog, err = telemetry.InitLogger(telemetry.LogConfig{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
		})
		if err != nil {
			return fmt.Errorf("failed to init logger: %w", err)
		}
		if cfgPath := v.ConfigFileUsed(); cfgPath != "" {
			logger.Debug("loaded config", "file", cfgPath)
		}

		if cfg.Telemetry.Enabled {
			cleanupTelemetry, err = telemetry.InitTelemetry(context.Background(), cfg.Telemetry.Dir, version)
			if err != nil {
				return fmt.Errorf("failed to init telemetry: %w", err)
			}
		}
		return nil
	},
}

func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// execute runs the command tree and always flushes telemetry and closes the
// log file afterwards. Cobra skips post-run hooks when RunE fails.
func execute() error {
	defer shutdown()
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "error", err)
	}
	return err
}

func shutdown() {
	cleanupTelemetry()
	cleanupTelemetry = func() {}
	if err := closeLog(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to close log file:", err)
	}
	closeLog = func() error { return nil }
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./vieng.yaml)")
	pf.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Also write logs to this file, rotated")
	pf.Bool("telemetry", false, "Export traces and metrics to files")
	pf.String("telemetry-dir", defaultTelemetryDir, "Directory for trace and metric files")
	pf.String("db", defaultCacheDB, "Translation memory database path")
	pf.Bool("no-cache", false, "Do not use the translation memory")
}
