package config

import (
	"errors"
	"os"
	"time"

	"github.com/Egor213/LogTrail/internal/classifier"
	errorsUtils "github.com/Egor213/LogTrail/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        `yaml:"app"`
		Log        `yaml:"log"`
		Input      `yaml:"input"`
		Classifier `yaml:"classifier"`
		Output     `yaml:"output"`
		Kafka      `yaml:"kafka"`
		Metrics    `yaml:"metrics"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"logtrail"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	}

	Input struct {
		Path string `yaml:"path" env:"INPUT_PATH"`
	}

	Classifier struct {
		Mode    string                `yaml:"mode" env:"CLASSIFIER_MODE"`
		Preset  string                `yaml:"preset" env:"CLASSIFIER_PRESET" env-default:"incident"`
		Default string                `yaml:"default" env:"CLASSIFIER_DEFAULT" env-default:"ℹ️ Info"`
		Rules   []classifier.RuleSpec `yaml:"rules"`
	}

	Output struct {
		Format string `yaml:"format" env:"OUTPUT_FORMAT" env-default:"block"`
	}

	Kafka struct {
		Brokers      []string      `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic        string        `yaml:"topic" env:"KAFKA_TOPIC" env-default:"logtrail.entries"`
		Encoding     string        `yaml:"encoding" env:"KAFKA_ENCODING" env-default:"json"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT" env-default:"10s"`
	}

	Metrics struct {
		Textfile string `yaml:"textfile" env:"METRICS_TEXTFILE"`
	}
)

const (
	ENV_PATH            = ".env"
	DEFAULT_CONFIG_PATH = "config/config.yaml"
)

func New() (*Config, error) {
	if err := godotenv.Load(ENV_PATH); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errorsUtils.WrapPathErr(err)
	}

	cfg := &Config{}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Debug("Config path is not set, using default")
		pathToConfig = DEFAULT_CONFIG_PATH
	}

	if _, err := os.Stat(pathToConfig); err != nil {
		log.WithField("path", pathToConfig).Debug("Config file not found, reading environment only")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

// KafkaEnabled reports whether filtered entries should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// Table resolves the classifier rule table: inline rules win over the preset.
func (c *Config) Table() (classifier.Table, error) {
	if len(c.Classifier.Rules) == 0 {
		return classifier.Preset(c.Classifier.Preset)
	}
	mode := c.Classifier.Mode
	if mode == "" {
		mode = classifier.ModeContent
	}
	return classifier.Build(mode, c.Classifier.Rules, c.Classifier.Default)
}
