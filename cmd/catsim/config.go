package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/catsim"
	"github.com/hupe1980/catsim/codec"
	"github.com/hupe1980/catsim/filter"
	"github.com/hupe1980/catsim/resource"
	"github.com/hupe1980/catsim/sparse"
)

const (
	configName = ".catsim"
	envPrefix  = "CATSIM"
)

// validate caches struct info across calls.
var validate = validator.New(validator.WithRequiredStructEnabled())

// cliConfig is the merged view of flags, CATSIM_* environment variables
// and the optional config file.
type cliConfig struct {
	Store       string      `mapstructure:"store" validate:"required"`
	Output      string      `mapstructure:"output"`
	Project     string      `mapstructure:"project"`
	Levels      int         `mapstructure:"levels" validate:"gte=0"`
	Paths       []string    `mapstructure:"paths" validate:"omitempty,dive,required"`
	Columns     []string    `mapstructure:"columns" validate:"omitempty,dive,required"`
	Weights     []float64   `mapstructure:"weights" validate:"omitempty,dive,gte=0"`
	Caps        []uint32    `mapstructure:"caps"`
	Epsilon     float64     `mapstructure:"epsilon" validate:"gte=0,lt=1"`
	Workers     int         `mapstructure:"workers" validate:"gte=0"`
	Marker      string      `mapstructure:"marker"`
	Rules       string      `mapstructure:"rules" validate:"omitempty,file"`
	Compression string      `mapstructure:"compression" validate:"oneof=none lz4 zstd"`
	Codec       string      `mapstructure:"codec" validate:"oneof=json go-json"`
	MetricsOut  string      `mapstructure:"metrics_out"`
	Log         logConfig   `mapstructure:"log"`
	Limits      limitConfig `mapstructure:"limits"`
	MinIO       minioConfig `mapstructure:"minio"`
}

type logConfig struct {
	Format string `mapstructure:"format" validate:"oneof=text json"`
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type limitConfig struct {
	MemoryBytes   int64 `mapstructure:"memory_bytes" validate:"gte=0"`
	IOBytesPerSec int64 `mapstructure:"io_bytes_per_sec" validate:"gte=0"`
	MaxWorkers    int64 `mapstructure:"max_workers" validate:"gte=0"`
}

type minioConfig struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Secure    bool   `mapstructure:"secure"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "")
	v.SetDefault("epsilon", 1e-4)
	v.SetDefault("workers", 0)
	v.SetDefault("marker", catsim.DefaultDisambiguationMarker)
	v.SetDefault("compression", "zstd")
	v.SetDefault("codec", "go-json")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")
	v.SetDefault("minio.secure", true)
}

// initConfig wires .env, environment variables and the config file into v.
// A missing config file is not an error unless one was named explicitly.
func initConfig(v *viper.Viper, cfgFile string) error {
	// .env is optional.
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

// loadConfig unmarshals and validates the merged configuration.
func loadConfig(v *viper.Viper) (cliConfig, error) {
	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", strings.ToLower(fe.Namespace()), fe.Tag()))
			}
			return cfg, fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return cfg, err
	}
	return cfg, nil
}

func (c cliConfig) logger(cmd *cobra.Command) *catsim.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.Log.Level))
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return catsim.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), opts))
	}
	return catsim.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
}

func (c cliConfig) codec() codec.Codec {
	cc, _ := codec.ByName(c.Codec)
	return cc
}

func (c cliConfig) controller() *resource.Controller {
	if c.Limits == (limitConfig{}) {
		return nil
	}
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   c.Limits.MemoryBytes,
		MaxWorkers:         c.Limits.MaxWorkers,
		IOLimitBytesPerSec: c.Limits.IOBytesPerSec,
	})
}

// options translates the config into pipeline options. Whether levels or
// paths are given is left to the pipeline, which reports a ConfigError.
func (c cliConfig) options(rc *resource.Controller) ([]catsim.Option, error) {
	var opts []catsim.Option
	if c.Levels > 0 {
		opts = append(opts, catsim.WithLevels(c.Levels))
	}
	if len(c.Paths) > 0 {
		opts = append(opts, catsim.WithLevelPaths(c.Paths...))
	}
	if c.Project != "" {
		opts = append(opts, catsim.WithProject(c.Project))
	}
	if len(c.Columns) > 0 {
		opts = append(opts, catsim.WithColumns(c.Columns...))
	}
	if len(c.Weights) > 0 {
		opts = append(opts, catsim.WithWeights(c.Weights...))
	}
	if len(c.Caps) > 0 {
		opts = append(opts, catsim.WithCaps(c.Caps...))
	}
	if c.Rules != "" {
		data, err := os.ReadFile(c.Rules)
		if err != nil {
			return nil, fmt.Errorf("read rules: %w", err)
		}
		f, err := filter.Load(data)
		if err != nil {
			return nil, fmt.Errorf("load rules %s: %w", c.Rules, err)
		}
		opts = append(opts, catsim.WithFilter(f))
	}
	opts = append(opts,
		catsim.WithEpsilon(c.Epsilon),
		catsim.WithWorkers(c.Workers),
		catsim.WithDisambiguationMarker(c.Marker),
	)
	if rc != nil {
		opts = append(opts, catsim.WithResourceController(rc))
	}
	return opts, nil
}

func (c cliConfig) compression() sparse.Compression {
	comp, _ := sparse.ParseCompression(c.Compression)
	return comp
}
