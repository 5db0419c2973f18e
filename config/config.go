package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

const (
	SourceCSV = "csv"
	SourceDB  = "db"
)

type Config struct {
	DataSource string
	DataPath   string
	DbDsn      string
	DbTable    string
	HTTPAddr   string
	TgToken    string

	LogLevel      string
	LogFormat     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process-wide configuration read from the
// environment and an optional .env file.
func GetConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		config = cfg
	})
	return config
}

// Load reads configuration from the given env files (".env" when none are
// given). Variables already set in the process environment win over the
// files. Missing files are skipped.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileEnv := map[string]string{}
	for _, f := range files {
		values, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
		for k, v := range values {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}

	get := func(key, def string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if v, ok := fileEnv[key]; ok && v != "" {
			return v
		}
		return def
	}
	getInt := func(key string, def int) (int, error) {
		raw := get(key, "")
		if raw == "" {
			return def, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	cfg := &Config{
		DataSource: get("DATA_SOURCE", SourceCSV),
		DataPath:   get("DATA_PATH", "Netflix_Userbase.csv"),
		DbDsn:      get("DB_DSN", ""),
		DbTable:    get("DB_TABLE", "subscribers"),
		HTTPAddr:   get("HTTP_ADDR", ":8050"),
		TgToken:    get("TG_TOKEN", ""),
		LogLevel:   get("LOG_LEVEL", "info"),
		LogFormat:  get("LOG_FORMAT", "console"),
		LogFile:    get("LOG_FILE", ""),
	}

	var err error
	if cfg.LogMaxSizeMB, err = getInt("LOG_MAX_SIZE_MB", 100); err != nil {
		return nil, err
	}
	if cfg.LogMaxBackups, err = getInt("LOG_MAX_BACKUPS", 3); err != nil {
		return nil, err
	}
	if cfg.LogMaxAgeDays, err = getInt("LOG_MAX_AGE_DAYS", 28); err != nil {
		return nil, err
	}

	switch cfg.DataSource {
	case SourceCSV:
	case SourceDB:
		if cfg.DbDsn == "" {
			return nil, errors.New("DB_DSN is required when DATA_SOURCE=db")
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DataSource)
	}

	return cfg, nil
}
