package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the themekit configuration
type Config struct {
	Resources ResourcesConfig `mapstructure:"resources"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Themes    ThemesConfig    `mapstructure:"themes"`
	Fonts     FontsConfig     `mapstructure:"fonts"`
	Render    RenderConfig    `mapstructure:"render"`
	Stack     string          `mapstructure:"stack"`
}

// ResourcesConfig locates the front-end files themekit edits. Every path
// except Root is relative to Root.
type ResourcesConfig struct {
	Root      string `mapstructure:"root"`
	ThemesDir string `mapstructure:"themes_dir"`
	AppCSS    string `mapstructure:"app_css"`
	Registry  string `mapstructure:"registry"`
}

// FetchConfig holds remote definition download settings
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ThemesConfig holds registry settings
type ThemesConfig struct {
	Protected          []string `mapstructure:"protected"`
	DefaultDescription string   `mapstructure:"default_description"`
}

// FontsConfig controls font import derivation
type FontsConfig struct {
	ProviderURL string `mapstructure:"provider_url"`
	Placement   string `mapstructure:"placement"`
}

// RenderConfig controls theme stylesheet rendering
type RenderConfig struct {
	MergeSensitive []string `mapstructure:"merge_sensitive"`
}

// Font import placements.
const (
	PlacementTheme = "theme"
	PlacementApp   = "app"
)

// ProjectFiles are looked up, in order, in the working directory.
var ProjectFiles = []string{
	".themekit.yaml",
	".themekit.yml",
	".themekit.toml",
	".themekit.json",
}

// Default configuration values
var defaultConfig = Config{
	Resources: ResourcesConfig{
		Root:      "resources",
		ThemesDir: "css/themes",
		AppCSS:    "css/app.css",
		Registry:  "js/conf/themes.ts",
	},
	Fetch: FetchConfig{
		Timeout:   30 * time.Second,
		UserAgent: "themekit",
	},
	Themes: ThemesConfig{
		Protected:          []string{"default"},
		DefaultDescription: "Imported from a shadcn theme registry.",
	},
	Fonts: FontsConfig{
		ProviderURL: "https://fonts.googleapis.com/css2?family={family}&display=swap",
		Placement:   PlacementTheme,
	},
	Render: RenderConfig{
		MergeSensitive: []string{"radius"},
	},
	Stack: "auto",
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	c := defaultConfig
	c.Themes.Protected = append([]string(nil), defaultConfig.Themes.Protected...)
	c.Render.MergeSensitive = append([]string(nil), defaultConfig.Render.MergeSensitive...)
	return &c
}

// Options selects where configuration is read from.
type Options struct {
	// Dir is searched for project files. Defaults to the working directory.
	Dir string
	// File, when set, is the only config file read and must exist.
	File string
}

// LoadConfig loads configuration from defaults, an optional config file and
// THEMEKIT_* environment variables, in increasing precedence.
func LoadConfig(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("resources.root", defaultConfig.Resources.Root)
	v.SetDefault("resources.themes_dir", defaultConfig.Resources.ThemesDir)
	v.SetDefault("resources.app_css", defaultConfig.Resources.AppCSS)
	v.SetDefault("resources.registry", defaultConfig.Resources.Registry)
	v.SetDefault("fetch.timeout", defaultConfig.Fetch.Timeout)
	v.SetDefault("fetch.user_agent", defaultConfig.Fetch.UserAgent)
	v.SetDefault("themes.protected", defaultConfig.Themes.Protected)
	v.SetDefault("themes.default_description", defaultConfig.Themes.DefaultDescription)
	v.SetDefault("fonts.provider_url", defaultConfig.Fonts.ProviderURL)
	v.SetDefault("fonts.placement", defaultConfig.Fonts.Placement)
	v.SetDefault("render.merge_sensitive", defaultConfig.Render.MergeSensitive)
	v.SetDefault("stack", defaultConfig.Stack)

	v.SetEnvPrefix("THEMEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch file := projectFile(opts); {
	case opts.File != "":
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", opts.File, err)
		}
	case file != "":
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	default:
		v.SetConfigName("themekit")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.themekit")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading user config: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func projectFile(opts Options) string {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range ProjectFiles {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

// Validate rejects values themekit cannot act on.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Resources.Root) == "" {
		problems = append(problems, "resources.root must not be empty")
	}
	for key, val := range map[string]string{
		"resources.themes_dir": c.Resources.ThemesDir,
		"resources.app_css":    c.Resources.AppCSS,
		"resources.registry":   c.Resources.Registry,
	} {
		if strings.TrimSpace(val) == "" {
			problems = append(problems, key+" must not be empty")
		} else if filepath.IsAbs(val) {
			problems = append(problems, key+" must be relative to resources.root")
		}
	}
	if c.Fetch.Timeout <= 0 {
		problems = append(problems, "fetch.timeout must be positive")
	}
	switch c.Fonts.Placement {
	case PlacementTheme, PlacementApp:
	default:
		problems = append(problems, fmt.Sprintf("fonts.placement %q is not one of theme, app", c.Fonts.Placement))
	}
	if !strings.Contains(c.Fonts.ProviderURL, "{family}") {
		problems = append(problems, "fonts.provider_url must contain the {family} placeholder")
	}
	switch c.Stack {
	case "auto", "react", "vue":
	default:
		problems = append(problems, fmt.Sprintf("stack %q is not one of auto, react, vue", c.Stack))
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}
