// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken    string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramOpsChat  int64  `yaml:"telegram_ops_chat" env:"TELEGRAM_OPS_CHAT"` //optional status channel
	DatabaseURL      string `yaml:"database_url" env:"DATABASE_URL"`
	//Search criteria
	SearchQueries []string `yaml:"search_queries"`
	PerQueryLimit int      `yaml:"per_query_limit"`
	//Scan behaviour
	ScanIntervalStr string `yaml:"scan_interval"`
	WarmupDelayStr  string `yaml:"warmup_delay"`
	AcceptThreshold int    `yaml:"accept_threshold"`
	AlertThreshold  int    `yaml:"alert_threshold"`
	//parsed from the *Str fields
	ScanInterval time.Duration `yaml:"-"`
	WarmupDelay  time.Duration `yaml:"-"`
	//Paths
	AuthPath string `yaml:"auth_path"`
	//HTTP
	Port string `yaml:"port" env:"PORT"`
}

// defaultQueries mirrors the searches that historically surfaced the most
// applyable ambassador posts.
var defaultQueries = []string{
	"hiring ambassador web3",
	"brand ambassador crypto",
	"kol wanted web3",
	"community manager hiring",
	"hiring social media web3",
	"ambassador position crypto",
	"web3 influencer wanted",
	"hiring marketing web3",
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chat := os.Getenv("TELEGRAM_OPS_CHAT"); chat != "" {
		id, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_OPS_CHAT: %v", err)
		}
		cfg.TelegramOpsChat = id
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	//Set default values if not set
	if len(cfg.SearchQueries) == 0 {
		cfg.SearchQueries = defaultQueries
	}

	if cfg.PerQueryLimit <= 0 {
		cfg.PerQueryLimit = 30
	}

	cfg.ScanInterval = parseDurationOr(cfg.ScanIntervalStr, 10*time.Minute)
	cfg.WarmupDelay = parseDurationOr(cfg.WarmupDelayStr, 10*time.Second)

	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = 30
	}

	if cfg.AlertThreshold <= 0 {
		cfg.AlertThreshold = 60
	}

	if cfg.AuthPath == "" {
		cfg.AuthPath = "data/auth.json"
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	//Validate required fields
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	return cfg
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("⚠️ Invalid duration %q, using %s", s, fallback)
		return fallback
	}
	return d
}
