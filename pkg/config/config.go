package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// HTTPPort is where syncd listens; RemoteURL is where the engine
	// reaches it, API prefix included.
	HTTPPort  int    `envconfig:"HTTP_PORT" default:"5000"`
	RemoteURL string `envconfig:"REMOTE_URL" default:"http://localhost:5000/api"`

	// DataDir holds the per-collection cache files shared by every
	// process on the device. DBFile is syncd's document store.
	DataDir string `envconfig:"DATA_DIR" default:"data"`
	DBFile  string `envconfig:"DB_FILE" default:"db.json"`

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
