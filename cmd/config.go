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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/valpere/vieng/internal/parser"
	"github.com/valpere/vieng/internal/session"
	"github.com/valpere/vieng/internal/translator"
)

const (
	envPrefix           = "VIENG"
	defaultLogLevel     = "info"
	defaultTelemetryDir = "./logs"
	defaultCacheDB      = "./data/vieng.db"
	defaultAddr         = ":8080"
	defaultBackend      = "marian"
)

// Config is the merged view of flags, VIENG_* environment variables and
// the optional vieng.yaml file, in that order of precedence.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Parser     ParserConfig     `mapstructure:"parser"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Log        LogConfig        `mapstructure:"log"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

type ServerConfig struct {
	Addr       string        `mapstructure:"addr"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type TranslatorConfig struct {
	Backend string `mapstructure:"backend"`

	translator.ServiceConfig `mapstructure:",squash"`
}

type ParserConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	DB       string `mapstructure:"db"`
	Disabled bool   `mapstructure:"disabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", defaultAddr)
	v.SetDefault("server.session_ttl", session.DefaultTTL)
	v.SetDefault("translator.backend", defaultBackend)
	v.SetDefault("translator.model", "")
	v.SetDefault("translator.base_url", "")
	v.SetDefault("translator.api_key", "")
	v.SetDefault("translator.credentials", "")
	v.SetDefault("translator.project_id", "")
	v.SetDefault("translator.timeout", 120*time.Second)
	v.SetDefault("parser.base_url", parser.DefaultUDPipeBaseURL)
	v.SetDefault("parser.model", parser.DefaultUDPipeModel)
	v.SetDefault("parser.timeout", 60*time.Second)
	v.SetDefault("cache.db", defaultCacheDB)
	v.SetDefault("cache.disabled", false)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.dir", defaultTelemetryDir)
	v.SetDefault("cors.origins", []string{})
}

// flagKeys maps config keys to the flag names that override them. Only the
// flags defined on the running command are bound.
var flagKeys = map[string]string{
	"server.addr":            "addr",
	"server.session_ttl":     "session-ttl",
	"translator.backend":     "backend",
	"translator.model":       "model",
	"translator.base_url":    "base-url",
	"translator.api_key":     "api-key",
	"translator.credentials": "credentials",
	"translator.project_id":  "project-id",
	"translator.timeout":     "timeout",
	"parser.base_url":        "parser-url",
	"parser.model":           "parser-model",
	"cache.db":               "db",
	"cache.disabled":         "no-cache",
	"log.level":              "log-level",
	"log.file":               "log-file",
	"telemetry.enabled":      "telemetry",
	"telemetry.dir":          "telemetry-dir",
	"cors.origins":           "cors-origins",
}

// bindFlags binds each config key to its flag when fs defines it.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// loadConfig reads cfgFile, or vieng.yaml from the working directory or
// $HOME/.config/vieng when cfgFile is empty. A missing default file is not
// an error.
func loadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("vieng")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vieng")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, nil
}
