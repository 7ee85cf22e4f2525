package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dfamin/pkg/errors"
	"github.com/matzehuels/dfamin/pkg/pipeline"
)

// Config holds user defaults read from config.toml. Command-line flags
// always win over values from the file.
//
//	formats    = ["dot", "svg"]
//	missing    = "distinguish"
//	rankdir    = "TB"
//	detailed   = true
//	output_dir = "out"
//	png_scale  = 3.0
type Config struct {
	Formats   []string `toml:"formats"`
	Missing   string   `toml:"missing"`
	RankDir   string   `toml:"rankdir"`
	Detailed  bool     `toml:"detailed"`
	OutputDir string   `toml:"output_dir"`
	PNGScale  float64  `toml:"png_scale"`
}

// configDir returns the config directory using XDG standard (~/.config/dfamin/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads the config file at path. An empty path selects the
// default location, where a missing file yields the zero Config. An
// explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return err
	}
	if cfg.Missing != "" {
		if err := pipeline.ValidateMissing(cfg.Missing); err != nil {
			return err
		}
	}
	if cfg.RankDir != "" {
		if err := pipeline.ValidateRankDir(cfg.RankDir); err != nil {
			return err
		}
	}
	if cfg.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale must be positive, got %v", cfg.PNGScale)
	}
	return nil
}

// apply copies config values into opts for every flag the user did not set.
func (cfg Config) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f == nil || f.Changed
	}
	if !changed("format") && len(cfg.Formats) > 0 {
		opts.Formats = append([]string(nil), cfg.Formats...)
	}
	if !changed("missing") && cfg.Missing != "" {
		opts.Missing = cfg.Missing
	}
	if !changed("rankdir") && cfg.RankDir != "" {
		opts.RankDir = cfg.RankDir
	}
	if !changed("detailed") && cfg.Detailed {
		opts.Detailed = true
	}
	if !changed("png-scale") && cfg.PNGScale > 0 {
		opts.PNGScale = cfg.PNGScale
	}
}

// outputDir returns the directory for derived output paths, or "" for the
// input file's directory.
func (cfg Config) outputDir(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		return ""
	}
	return cfg.OutputDir
}
