package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	NLP        NLPConfig        `mapstructure:"nlp"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Outputs    OutputsConfig    `mapstructure:"outputs"`
}

// DictionaryConfig controls the definition lookup and the keyword enrichment pacing.
type DictionaryConfig struct {
	BaseURL      string        `mapstructure:"base_url" validate:"required,url"`
	MaxRetries   int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay    time.Duration `mapstructure:"base_delay"`
	KeywordPause time.Duration `mapstructure:"keyword_pause"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type NLPConfig struct {
	BaseURL      string        `mapstructure:"base_url" validate:"required,url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PollAttempts uint          `mapstructure:"poll_attempts" validate:"gte=1"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// DatabaseConfig is only used when Enabled is set; lookups are then archived to MySQL.
type DatabaseConfig struct {
	Enabled         bool              `mapstructure:"enabled"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type TemplatesConfig struct {
	DictionaryReportTemplate string `mapstructure:"dictionary_report_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	Directory string `mapstructure:"directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/projectzero")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev")
	v.SetDefault("dictionary.max_retries", 3)
	v.SetDefault("dictionary.base_delay", time.Second)
	v.SetDefault("dictionary.keyword_pause", 100*time.Millisecond)
	v.SetDefault("dictionary.timeout", 10*time.Second)
	v.SetDefault("nlp.base_url", "http://localhost:5001")
	v.SetDefault("nlp.timeout", 30*time.Second)
	v.SetDefault("nlp.poll_attempts", 30)
	v.SetDefault("nlp.poll_interval", time.Second)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "projectzero")
	v.SetDefault("database.username", "user")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.dictionary_report_template", "")
	v.SetDefault("outputs.directory", filepath.Join("outputs", "dictionary"))

	bindings := map[string]string{
		"server.port":         "MAIN_APP_PORT",
		"dictionary.base_url": "DICTIONARY_BASE_URL",
		"nlp.base_url":        "NLP_BASE_URL",
		"database.password":   "DB_PASSWORD",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
