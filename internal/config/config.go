package config

import (
	"os"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/totegamma/gravatar"
)

// Config is the service configuration. Preset values are decoded by YAML
// rules, so colours such as border: "000" must be quoted to stay strings.
type Config struct {
	Server  Server                    `yaml:"server"`
	Presets map[string]map[string]any `yaml:"presets"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	BaseURL       string `yaml:"baseURL"`
	UserAgent     string `yaml:"userAgent"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

const defaultListen = ":8000"

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to open config")
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	if config.Server.Listen == "" {
		config.Server.Listen = defaultListen
	}
	if config.Server.BaseURL == "" {
		config.Server.BaseURL = gravatar.BaseURL
	}

	for name, options := range config.Presets {
		if _, err := gravatar.NewFromConfig(options); err != nil {
			return Config{}, errors.Wrapf(err, "invalid preset %s", name)
		}
	}

	return config, nil
}
