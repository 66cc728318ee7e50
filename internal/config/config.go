package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Redis  RedisConfig  `yaml:"redis"`
	Auth   AuthConfig   `yaml:"auth"`
	Portal PortalConfig `yaml:"portal"`
	Blobs  BlobConfig   `yaml:"blobs"`
	Admin  AdminConfig  `yaml:"admin"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type PortalConfig struct {
	// LoginAttempts is the fixed-window cap on portal login attempts
	// per access code. WindowMinutes sizes the window.
	LoginAttempts int `yaml:"login_attempts"`
	WindowMinutes int `yaml:"window_minutes"`
}

type BlobConfig struct {
	Dir string `yaml:"dir"`
}

type AdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Load reads config/base.yaml, overlays config/<env>.yaml when present
// (env comes from APP_ENV, default "local"), then applies environment
// variable overrides so deployments never need secrets on disk.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = "config"
	}

	cfg := defaults()

	if err := loadFile(filepath.Join(configDir, "base.yaml"), cfg); err != nil {
		return nil, fmt.Errorf("load base.yaml: %w", err)
	}

	env := getEnv("APP_ENV", "local")
	envFile := filepath.Join(configDir, env+".yaml")
	if _, err := os.Stat(envFile); err == nil {
		if err := loadFile(envFile, cfg); err != nil {
			return nil, fmt.Errorf("load %s.yaml: %w", env, err)
		}
	}

	overrideFromEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		DB:     DBConfig{Host: "127.0.0.1", Port: 5432, User: "workflow", Name: "workflow"},
		Redis:  RedisConfig{Addr: "127.0.0.1:6379"},
		Portal: PortalConfig{LoginAttempts: 10, WindowMinutes: 15},
		Blobs:  BlobConfig{Dir: "data/blobs"},
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func overrideFromEnv(cfg *Config) {
	setStr(&cfg.Server.Addr, "SERVER_ADDR")
	setStr(&cfg.DB.Host, "DB_HOST")
	setInt(&cfg.DB.Port, "DB_PORT")
	setStr(&cfg.DB.User, "DB_USER")
	setStr(&cfg.DB.Password, "DB_PASSWORD")
	setStr(&cfg.DB.Name, "DB_NAME")
	setStr(&cfg.Redis.Addr, "REDIS_ADDR")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setStr(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setStr(&cfg.Blobs.Dir, "BLOB_DIR")
	setStr(&cfg.Admin.Email, "ADMIN_EMAIL")
	setStr(&cfg.Admin.Password, "ADMIN_PASSWORD")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
