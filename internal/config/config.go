// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
)

// Config holds the full application configuration.
type Config struct {
	API      APIConfig      `yaml:"api" mapstructure:"api"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// APIConfig holds CoRE Stack API credentials.
type APIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnalysisConfig configures the connectivity classification.
type AnalysisConfig struct {
	Resolution        float64 `yaml:"resolution" mapstructure:"resolution"`
	EdgeThreshold     float64 `yaml:"edge_threshold" mapstructure:"edge_threshold"`
	CoreThreshold     float64 `yaml:"core_threshold" mapstructure:"core_threshold"`
	ForestCodes       []int   `yaml:"forest_codes" mapstructure:"forest_codes"`
	SimplifyTolerance float64 `yaml:"simplify_tolerance" mapstructure:"simplify_tolerance"`
	SchemePath        string  `yaml:"scheme_path" mapstructure:"scheme_path"`
}

// OutputConfig configures run outputs.
type OutputConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	VectorFormat string `yaml:"vector_format" mapstructure:"vector_format"`
}

// StoreConfig configures the run history catalog.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CANOPY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "https://api.core-stack.org")
	v.SetDefault("analysis.resolution", 30.0)
	v.SetDefault("analysis.edge_threshold", 100.0)
	v.SetDefault("analysis.core_threshold", 300.0)
	v.SetDefault("analysis.forest_codes", []int{3, 4})
	v.SetDefault("analysis.simplify_tolerance", 10.0)
	v.SetDefault("output.dir", "outputs")
	v.SetDefault("output.vector_format", "geojson")
	v.SetDefault("store.path", "runs.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Thresholds returns the classification thresholds from the analysis
// section.
func (c *Config) Thresholds() connectivity.Thresholds {
	return connectivity.Thresholds{
		Resolution: c.Analysis.Resolution,
		EdgeMeters: c.Analysis.EdgeThreshold,
		CoreMeters: c.Analysis.CoreThreshold,
	}
}

// Validate checks the analysis and output sections.
func (c *Config) Validate() error {
	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if c.Analysis.SimplifyTolerance < 0 {
		return &connectivity.ConfigurationError{Reason: "simplify tolerance must be non-negative"}
	}
	switch strings.ToLower(c.Output.VectorFormat) {
	case "geojson", "shp":
	default:
		return &connectivity.ConfigurationError{
			Reason: "vector format must be geojson or shp, got " + c.Output.VectorFormat,
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
