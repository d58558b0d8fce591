package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/beadsync/internal/config"
	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/logging"
)

// Config is the CLI configuration. Flags beat BEADSYNC_* environment
// variables, which beat .env files, which beat .beadsync.yaml in the
// working directory or home.
type Config struct {
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	ConfigFile string

	// Sync defaults.
	StorePath string
	Source    string
	Project   string
	Component string
	Filter    string
	Audit     bool

	LogLevel  string
	LogFormat string
	LogOutput string
}

// Flags are the root persistent flags, applied over Config once cobra has
// parsed them. Empty strings leave the configured value alone.
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	LogLevel   string
	Store      string
}

// LoadConfig reads .env files, the environment and the discovered config
// file.
func LoadConfig() (*Config, error) {
	for _, name := range []string{".env.local", ".env"} {
		_ = godotenv.Load(name)
	}

	viper.SetEnvPrefix("BEADSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("store", constants.DefaultStoreDir)
	if err := bindTrackerEnv(); err != nil {
		return nil, err
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName(".beadsync")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, &errors.ConfigError{Component: "config", Message: "cannot read .beadsync.yaml", Err: err}
		}
	}

	logEnv := logging.FromEnv()
	c := &Config{
		Verbose:   viper.GetBool("verbose"),
		Quiet:     viper.GetBool("quiet"),
		NoColor:   viper.GetBool("no-color") || os.Getenv("NO_COLOR") != "",
		Format:    viper.GetString("format"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: logEnv.Format,
		LogOutput: logEnv.Output,
	}
	c.syncDefaults()
	return c, nil
}

// LoadConfigFile reads an explicit --config file over the current values.
func (c *Config) LoadConfigFile(path string) error {
	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return &errors.ConfigError{Component: "config", Message: "cannot read " + filepath.Base(path), Err: err}
	}
	c.syncDefaults()
	return nil
}

// Apply lays parsed flags over the config.
func (c *Config) Apply(f Flags) {
	c.Verbose, c.Quiet = f.Verbose, f.Quiet
	c.NoColor = c.NoColor || f.NoColor
	for dst, src := range map[*string]string{
		&c.Format:    f.Format,
		&c.LogLevel:  f.LogLevel,
		&c.StorePath: f.Store,
	} {
		if src != "" {
			*dst = src
		}
	}
}

func (c *Config) syncDefaults() {
	c.ConfigFile = viper.ConfigFileUsed()
	c.StorePath = viper.GetString("store")
	c.Source = viper.GetString("source")
	c.Project = viper.GetString("project")
	c.Component = viper.GetString("component")
	c.Filter = viper.GetString("filter")
	c.Audit = viper.GetBool("audit")
}

// bindTrackerEnv lets tracker credentials be set in the config file under
// their environment variable names.
func bindTrackerEnv() error {
	for _, src := range append(issues.Sources(), issues.SourceExample) {
		for _, v := range config.EnvVars(src) {
			if err := viper.BindEnv(v.Name, v.Name); err != nil {
				return &errors.ConfigError{Component: "config", Message: "cannot bind " + v.Name, Err: err}
			}
		}
	}
	return nil
}
