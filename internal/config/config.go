package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   Server
	Download Download
}

type Server struct {
	Host        string        `env:"host" env-default:"localhost"`
	Port        string        `env:"port" env-default:"8080"`
	Timeout     time.Duration `env:"timeout" env-default:"30s"`
	IdleTimeout time.Duration `env:"idle_timeout" env-default:"60s"`
	RateLimit   float64       `env:"rate_limit" env-default:"10"`
	RateBurst   int           `env:"rate_burst" env-default:"20"`
}

type Download struct {
	Dir           string `env:"download_dir" env-default:"./downloads"`
	AudioFormat   string `env:"audio_format" env-default:"mp3"`
	AudioQuality  string `env:"audio_quality" env-default:"192K"`
	PlaylistLimit int    `env:"playlist_limit" env-default:"50"`
}

const configPath = "config/local.env"

func MustLoad() *Config {
	var cfg Config

	// the env file is optional: without it the process environment and
	// the env-default tags cover everything
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatal("failed to read config from environment: " + err.Error())
		}

		return &cfg
	}

	if err := godotenv.Load(configPath); err != nil {
		log.Fatalf("cannot load env file: %s", err)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatal("failed to read config: " + err.Error())
	}

	return &cfg
}
