package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	setDefaults(v)

	// 凭据类配置允许通过环境变量覆盖，例如 FANBOARD_DATABASE_DSN
	v.SetEnvPrefix("FANBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"redis.addr", "redis.password", "minio.access_key", "minio.secret_key", "notify.webhook_url"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "club_data.db")
	v.SetDefault("database.max_idle", 2)
	v.SetDefault("database.max_open", 1)
	v.SetDefault("database.max_lifetime", 60)

	v.SetDefault("scraper.base_url", "https://chronogenesis.net")
	v.SetDefault("scraper.club_id", "Uchoom")
	v.SetDefault("scraper.headless", true)
	v.SetDefault("scraper.timeout", 90)
	v.SetDefault("scraper.render_wait", 5)

	v.SetDefault("schedule.spec", "0 0 8 * * *")
	v.SetDefault("schedule.timezone", "Asia/Ho_Chi_Minh")

	v.SetDefault("club.name", "Uchoom")
	v.SetDefault("club.weekly_target", 3_000_000)

	v.SetDefault("archive.driver", ArchiveFS)
	v.SetDefault("archive.dir", "output/history")
	v.SetDefault("archive.prefix", "history/")

	v.SetDefault("cache.ttl", 1440)
	v.SetDefault("cache.local_size", 32*1024*1024)
}
