package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:5173"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	StaticDir string `env:"STATIC_DIR, default=client/dist"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	S3    S3Config
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=food_ordering"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host   string `env:"SMTP_HOST, default=smtp.mailtrap.io"`
	Port   string `env:"SMTP_PORT, default=2525"`
	User   string `env:"SMTP_USER"`
	Pass   string `env:"SMTP_PASS"`
	Sender string `env:"SMTP_SENDER, default=noreply@quickplate.example"`
}

// S3Config points at the S3-compatible bucket that hosts uploaded images.
// PublicBaseURL is the prefix of the URL handed back to clients.
type S3Config struct {
	Bucket        string `env:"S3_BUCKET,      default=quickplate-images"`
	Region        string `env:"S3_REGION,     default=us-east-1"`
	Endpoint      string `env:"S3_ENDPOINT"`
	AccessKeyID   string `env:"S3_ACCESS_KEY_ID"`
	SecretKey     string `env:"S3_SECRET_ACCESS_KEY"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
