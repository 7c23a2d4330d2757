// Package config loads regform settings with viper from defaults, an
// optional YAML file, REGFORM_ environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

const (
	// EnvPrefix prefixes every environment override (REGFORM_SERVER_ADDR).
	EnvPrefix = "REGFORM"
	// FileEnv names an explicit config file when --config is not given.
	FileEnv = "REGFORM_CONFIG_FILE"
	// FileName is the config file searched for in the working and home
	// directories, without extension.
	FileName = ".regform"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Templates TemplatesConfig `mapstructure:"templates" yaml:"templates"`
	Theme     ThemeConfig     `mapstructure:"theme" yaml:"theme"`
	Prompt    PromptConfig    `mapstructure:"prompt" yaml:"prompt"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr" yaml:"addr"`
	BasePath       string        `mapstructure:"base_path" yaml:"base_path"`
	Grace          time.Duration `mapstructure:"grace" yaml:"grace"`
	OriginPatterns []string      `mapstructure:"origin_patterns" yaml:"origin_patterns"`
	Metrics        bool          `mapstructure:"metrics" yaml:"metrics"`
}

// TemplatesConfig points the HTML renderer at templates on disk. An empty Dir
// uses the embedded templates.
type TemplatesConfig struct {
	Dir   string `mapstructure:"dir" yaml:"dir"`
	Watch bool   `mapstructure:"watch" yaml:"watch"`
}

type ThemeConfig struct {
	Name    string            `mapstructure:"name" yaml:"name"`
	Variant string            `mapstructure:"variant" yaml:"variant"`
	CSSVars map[string]string `mapstructure:"css_vars" yaml:"css_vars"`
}

type PromptConfig struct {
	Output string `mapstructure:"output" yaml:"output"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:    "127.0.0.1:8080",
			Grace:   5 * time.Second,
			Metrics: true,
		},
		Prompt: PromptConfig{Output: string(tui.OutputFormatPrettyText)},
		Log:    LogConfig{Level: "info"},
	}
}

// New returns a viper instance with defaults and environment lookups wired.
func New() *viper.Viper {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.base_path", defaults.Server.BasePath)
	v.SetDefault("server.grace", defaults.Server.Grace)
	v.SetDefault("server.origin_patterns", []string{})
	v.SetDefault("server.metrics", defaults.Server.Metrics)
	v.SetDefault("templates.dir", "")
	v.SetDefault("templates.watch", false)
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("prompt.output", defaults.Prompt.Output)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// FlagBindings maps config keys to the CLI flag names that may override them.
var FlagBindings = map[string]string{
	"server.addr":      "addr",
	"server.base_path": "base-path",
	"templates.dir":    "templates",
	"templates.watch":  "watch",
	"prompt.output":    "output",
	"log.level":        "log-level",
}

// BindFlags binds every flag in FlagBindings that flags defines.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if v == nil || flags == nil {
		return nil
	}
	for key, name := range FlagBindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("config: bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads path (or REGFORM_CONFIG_FILE, or .regform.yaml in the working or
// home directory) into v and decodes the result. A missing file is only an
// error when it was named explicitly.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = New()
	}

	explicit := strings.TrimSpace(path)
	if explicit == "" {
		explicit = strings.TrimSpace(os.Getenv(FileEnv))
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the binaries cannot act on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Server.Grace < 0 {
		return fmt.Errorf("config: server.grace must not be negative, got %s", c.Server.Grace)
	}
	if c.Templates.Watch && strings.TrimSpace(c.Templates.Dir) == "" {
		return errors.New("config: templates.watch requires templates.dir")
	}
	if _, ok := tui.ParseOutputFormat(c.Prompt.Output); !ok {
		return fmt.Errorf("config: unsupported prompt.output %q", c.Prompt.Output)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// RendererConfig converts the theme section for renderers. It returns nil
// when no theme is configured.
func (t ThemeConfig) RendererConfig() *theme.RendererConfig {
	if t.Name == "" && t.Variant == "" && len(t.CSSVars) == 0 {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
	}
	if len(t.CSSVars) > 0 {
		cfg.CSSVars = make(map[string]string, len(t.CSSVars))
		for key, value := range t.CSSVars {
			cfg.CSSVars[key] = value
		}
	}
	return cfg
}
