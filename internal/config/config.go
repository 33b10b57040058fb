package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type JWTConf struct {
	Secret     string `mapstructure:"secret"`
	AccessTTL  int    `mapstructure:"access_ttl_minutes"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

type S3Conf struct {
	PublicRead bool `mapstructure:"public_read"`
	PresignTTL int  `mapstructure:"presign_ttl_seconds"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type SpeechConf struct {
	Python         string `mapstructure:"python"`
	Script         string `mapstructure:"script"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type UploadConf struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type RateLimitConf struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Redis     RedisConf     `mapstructure:"redis"`
	JWT       JWTConf       `mapstructure:"jwt"`
	AWS       AWSConf       `mapstructure:"aws"`
	S3        S3Conf        `mapstructure:"s3"`
	Kafka     KafkaConf     `mapstructure:"kafka"`
	Speech    SpeechConf    `mapstructure:"speech"`
	Upload    UploadConf    `mapstructure:"upload"`
	RateLimit RateLimitConf `mapstructure:"rate_limit"`

	// derived
	ShutdownTimeout time.Duration
	AccessTokenTTL  time.Duration
	PresignTTL      time.Duration
	SpeechTimeout   time.Duration
	RateLimitWindow time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 5001
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = 60 * 24
	}
	if cfg.S3.PresignTTL == 0 {
		cfg.S3.PresignTTL = 600
	}
	if cfg.Speech.Python == "" {
		cfg.Speech.Python = "python3"
	}
	if cfg.Speech.TimeoutSeconds == 0 {
		cfg.Speech.TimeoutSeconds = 60
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = 10 * 1024 * 1024
	}
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = 20
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.AccessTokenTTL = time.Duration(cfg.JWT.AccessTTL) * time.Minute
	cfg.PresignTTL = time.Duration(cfg.S3.PresignTTL) * time.Second
	cfg.SpeechTimeout = time.Duration(cfg.Speech.TimeoutSeconds) * time.Second
	cfg.RateLimitWindow = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	return &cfg, nil
}
