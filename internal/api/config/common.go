package config

import (
	"fmt"
	"time"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	ArchiveFS    = "fs"
	ArchiveMinIO = "minio"
)

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Logstash LogstashConfig `mapstructure:"logstash"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Club     ClubConfig     `mapstructure:"club"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

// RedisConfig Addr 为空时不启用 Redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置，仅在 archive.driver=minio 时使用
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
}

// ScraperConfig 俱乐部页面抓取配置
type ScraperConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ClubID     string `mapstructure:"club_id"`
	Headless   bool   `mapstructure:"headless"`
	UserAgent  string `mapstructure:"user_agent"`
	ProxyURL   string `mapstructure:"proxy_url"`
	Timeout    int    `mapstructure:"timeout"`
	RenderWait int    `mapstructure:"render_wait"`
}

// ScheduleConfig 定时抓取配置，Spec 为带秒的 cron 表达式
type ScheduleConfig struct {
	Spec     string `mapstructure:"spec"`
	Timezone string `mapstructure:"timezone"`
}

type ClubConfig struct {
	Name         string `mapstructure:"name"`
	WeeklyTarget int64  `mapstructure:"weekly_target"`
}

type ArchiveConfig struct {
	Driver string `mapstructure:"driver"`
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// CacheConfig TTL 单位为分钟，LocalSize 为本地缓存字节数
type CacheConfig struct {
	TTL       int `mapstructure:"ttl"`
	LocalSize int `mapstructure:"local_size"`
}

type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

// Location 解析俱乐部所在时区
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate 校验互相依赖的配置项
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	switch c.Archive.Driver {
	case ArchiveFS:
		if c.Archive.Dir == "" {
			return fmt.Errorf("archive dir is required for fs driver")
		}
	case ArchiveMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("minio endpoint and bucket are required for minio archive driver")
		}
	default:
		return fmt.Errorf("unsupported archive driver %q", c.Archive.Driver)
	}
	if c.Club.WeeklyTarget < 0 {
		return fmt.Errorf("club weekly_target must not be negative")
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	return nil
}
