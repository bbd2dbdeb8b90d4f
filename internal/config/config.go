package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration for the mule-graph analysis
// engine: the tuning constants the spec requires to be centralized (§6),
// plus the ambient service/kafka/logging settings the server wrapper needs.
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Kafka       KafkaConfig     `mapstructure:"kafka"`
	Detection   DetectionConfig `mapstructure:"detection"`
	Logging     LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration for cmd/server.
type ServerConfig struct {
	HTTPPort     int  `mapstructure:"http_port"`
	ReadTimeout  int  `mapstructure:"read_timeout"`
	WriteTimeout int  `mapstructure:"write_timeout"`
	IdleTimeout  int  `mapstructure:"idle_timeout"`
	Debug        bool `mapstructure:"debug"`
}

// KafkaConfig holds configuration for the analysis-completed event producer.
type KafkaConfig struct {
	Brokers                string `mapstructure:"brokers"`
	AnalysisCompletedTopic string `mapstructure:"analysis_completed_topic"`
}

// DetectionConfig centralizes every tuning constant named in spec §6.
// Defaults are fixed for bit-exact reference parity; changing any of them
// opts out of that parity. Load does not log or otherwise flag such overrides.
type DetectionConfig struct {
	SmurfThreshold         int           `mapstructure:"smurf_threshold"`
	SmurfWindow            time.Duration `mapstructure:"smurf_window"`
	ShellMinHops           int           `mapstructure:"shell_min_hops"`
	ShellMaxIntermediateTx int           `mapstructure:"shell_max_intermediate_tx"`
	ShellMaxDepth          int           `mapstructure:"shell_max_depth"`
	CycleMinLength         int           `mapstructure:"cycle_min_length"`
	CycleMaxLength         int           `mapstructure:"cycle_max_length"`
	VelocityThreshold      int           `mapstructure:"velocity_threshold"`
	VelocityWindow         time.Duration `mapstructure:"velocity_window"`
	PayrollMinCount        int           `mapstructure:"payroll_min_count"`
	PayrollCVCap           float64       `mapstructure:"payroll_cv_cap"`

	ScoreWeightCycle        float64 `mapstructure:"score_weight_cycle"`
	ScoreWeightFanIn        float64 `mapstructure:"score_weight_fan_in"`
	ScoreWeightFanOut       float64 `mapstructure:"score_weight_fan_out"`
	ScoreWeightShellChain   float64 `mapstructure:"score_weight_shell_chain"`
	ScoreWeightHighVelocity float64 `mapstructure:"score_weight_high_velocity"`
	ScoreMax                float64 `mapstructure:"score_max"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from environment variables and config files,
// falling back to the spec-mandated defaults (setDefaults) when nothing
// overrides them.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/graph-engine")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("GRAPH_ENGINE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")

	viper.SetDefault("server.http_port", 8083)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)
	viper.SetDefault("server.debug", false)

	viper.SetDefault("kafka.brokers", "localhost:9092")
	viper.SetDefault("kafka.analysis_completed_topic", "mule-graph.analysis.completed")

	viper.SetDefault("detection.smurf_threshold", 10)
	viper.SetDefault("detection.smurf_window", "72h")
	viper.SetDefault("detection.shell_min_hops", 3)
	viper.SetDefault("detection.shell_max_intermediate_tx", 3)
	viper.SetDefault("detection.shell_max_depth", 6)
	viper.SetDefault("detection.cycle_min_length", 3)
	viper.SetDefault("detection.cycle_max_length", 5)
	viper.SetDefault("detection.velocity_threshold", 20)
	viper.SetDefault("detection.velocity_window", "24h")
	viper.SetDefault("detection.payroll_min_count", 10)
	viper.SetDefault("detection.payroll_cv_cap", 0.05)

	viper.SetDefault("detection.score_weight_cycle", 40.0)
	viper.SetDefault("detection.score_weight_fan_in", 25.0)
	viper.SetDefault("detection.score_weight_fan_out", 25.0)
	viper.SetDefault("detection.score_weight_shell_chain", 20.0)
	viper.SetDefault("detection.score_weight_high_velocity", 10.0)
	viper.SetDefault("detection.score_max", 100.0)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

func validateConfig(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", cfg.Server.HTTPPort)
	}

	if cfg.Kafka.Brokers == "" {
		return fmt.Errorf("kafka brokers are required")
	}

	d := cfg.Detection
	if d.SmurfThreshold <= 0 {
		return fmt.Errorf("detection.smurf_threshold must be positive")
	}
	if d.SmurfWindow <= 0 {
		return fmt.Errorf("detection.smurf_window must be positive")
	}
	if d.ShellMinHops <= 0 {
		return fmt.Errorf("detection.shell_min_hops must be positive")
	}
	if d.ShellMaxIntermediateTx <= 0 {
		return fmt.Errorf("detection.shell_max_intermediate_tx must be positive")
	}
	if d.CycleMinLength <= 0 || d.CycleMaxLength < d.CycleMinLength {
		return fmt.Errorf("detection.cycle_min_length/cycle_max_length are invalid")
	}
	if d.VelocityThreshold <= 0 {
		return fmt.Errorf("detection.velocity_threshold must be positive")
	}
	if d.VelocityWindow <= 0 {
		return fmt.Errorf("detection.velocity_window must be positive")
	}
	if d.PayrollMinCount <= 0 {
		return fmt.Errorf("detection.payroll_min_count must be positive")
	}
	if d.PayrollCVCap < 0 {
		return fmt.Errorf("detection.payroll_cv_cap must be non-negative")
	}
	if d.ScoreMax <= 0 {
		return fmt.Errorf("detection.score_max must be positive")
	}

	return nil
}
