package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Admin    AdminConfig    `yaml:"admin"`
	Upload   UploadConfig   `yaml:"upload"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret           string `yaml:"secret"`
	Issuer           string `yaml:"issuer"`
	ExpiresIn        int    `yaml:"expires_in"`         // access token TTL, seconds
	RefreshExpiresIn int    `yaml:"refresh_expires_in"` // refresh token TTL, seconds
}

// AdminConfig seeds the initial administrator account on first boot.
type AdminConfig struct {
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type UploadConfig struct {
	Dir string `yaml:"dir"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "sunday_picks.db",
		},
		JWT: JWTConfig{
			Secret:           "local-dev-secret",
			Issuer:           "sunday-picks-api",
			ExpiresIn:        900,
			RefreshExpiresIn: 2592000,
		},
		Admin: AdminConfig{
			Name:     "Admin",
			Phone:    "0000000000",
			Email:    "admin@sundaypicks.local",
			Password: "ChangeMe123!",
		},
		Upload: UploadConfig{
			Dir: "uploads",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		c.JWT.Issuer = issuer
	}
	if ttl := envSeconds("JWT_EXPIRES_IN"); ttl > 0 {
		c.JWT.ExpiresIn = ttl
	}
	if ttl := envSeconds("REFRESH_TOKEN_EXPIRES_IN"); ttl > 0 {
		c.JWT.RefreshExpiresIn = ttl
	}
	if name := os.Getenv("ADMIN_NAME"); name != "" {
		c.Admin.Name = name
	}
	if phone := os.Getenv("ADMIN_PHONE"); phone != "" {
		c.Admin.Phone = phone
	}
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		c.Admin.Email = email
	}
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		c.Admin.Password = password
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		c.Upload.Dir = dir
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = def.JWT.Secret
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = def.JWT.Issuer
	}
	if c.JWT.ExpiresIn <= 0 {
		c.JWT.ExpiresIn = def.JWT.ExpiresIn
	}
	if c.JWT.RefreshExpiresIn <= 0 {
		c.JWT.RefreshExpiresIn = def.JWT.RefreshExpiresIn
	}
	if c.Admin.Name == "" {
		c.Admin.Name = def.Admin.Name
	}
	if c.Admin.Phone == "" {
		c.Admin.Phone = def.Admin.Phone
	}
	if c.Admin.Email == "" {
		c.Admin.Email = def.Admin.Email
	}
	if c.Admin.Password == "" {
		c.Admin.Password = def.Admin.Password
	}
	if c.Upload.Dir == "" {
		c.Upload.Dir = def.Upload.Dir
	}
}

func envSeconds(key string) int {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return 0
	}
	return seconds
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
