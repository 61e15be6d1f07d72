package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openlist-contrib/openlist-bridge/internal/adapters/openlist"
	statusadapter "github.com/openlist-contrib/openlist-bridge/internal/adapters/render/status"
	tomlrepo "github.com/openlist-contrib/openlist-bridge/internal/adapters/repo/toml"
	"github.com/openlist-contrib/openlist-bridge/internal/application"
	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

var errServiceNotConfigured = errors.New("service is not configured: set base_url and credentials in ~/.olb/config.toml or OLB_* environment variables")

type app struct {
	config         appConfig
	service        ports.FileService
	dispatcher     *application.Dispatcher
	snapshots      ports.SnapshotRepository
	statusRenderer func(domain.SensorSnapshot, statusadapter.RenderOptions) (string, error)
	logger         *log.Logger
	now            func() time.Time
}

type appConfig struct {
	BaseURL      string
	Username     string
	Password     string
	APIKey       string
	TrackDirs    []string
	PollInterval time.Duration
	RateLimit    float64
	RateBurst    int
	StatePath    string
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	snapshots, err := tomlrepo.NewRepository(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("wire snapshot repository: %w", err)
	}

	a := &app{
		config:         cfg,
		snapshots:      snapshots,
		statusRenderer: statusadapter.Render,
		logger:         log.New(os.Stderr, "olb ", log.LstdFlags),
		now:            time.Now,
	}

	if cfg.BaseURL != "" {
		client, err := openlist.New(openlist.Config{
			BaseURL:   cfg.BaseURL,
			Username:  cfg.Username,
			Password:  cfg.Password,
			APIKey:    cfg.APIKey,
			RateLimit: rate.Limit(cfg.RateLimit),
			RateBurst: cfg.RateBurst,
		})
		if err != nil {
			return nil, fmt.Errorf("wire file service: %w", err)
		}
		a.service = client
		a.dispatcher = application.NewDispatcher(client)
	}

	return a, nil
}

func loadConfig() (appConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return appConfig{}, fmt.Errorf("resolve home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".olb")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.SetDefault("poll.interval", application.DefaultPollInterval.String())
	v.SetDefault("rate.limit", 0.0)
	v.SetDefault("rate.burst", 1)
	v.SetDefault("state.path", filepath.Join(configDir, "state.toml"))

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return appConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := appConfig{
		BaseURL:   envOrDefault("OLB_BASE_URL", v.GetString("base_url")),
		Username:  envOrDefault("OLB_USERNAME", v.GetString("username")),
		Password:  envOrDefault("OLB_PASSWORD", v.GetString("password")),
		APIKey:    envOrDefault("OLB_API_KEY", v.GetString("api_key")),
		TrackDirs: v.GetStringSlice("track_dirs"),
		RateLimit: v.GetFloat64("rate.limit"),
		RateBurst: v.GetInt("rate.burst"),
		StatePath: v.GetString("state.path"),
	}

	if raw := os.Getenv("OLB_TRACK_DIRS"); raw != "" {
		cfg.TrackDirs = splitTrackDirs(raw)
	}

	interval := envOrDefault("OLB_POLL_INTERVAL", v.GetString("poll.interval"))
	cfg.PollInterval, err = time.ParseDuration(interval)
	if err != nil {
		return appConfig{}, fmt.Errorf("parse poll interval %q: %w", interval, err)
	}

	return cfg, nil
}

func splitTrackDirs(raw string) []string {
	parts := strings.Split(raw, ",")
	dirs := make([]string, 0, len(parts))
	for _, part := range parts {
		if dir := strings.TrimSpace(part); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
