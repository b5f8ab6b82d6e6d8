package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name        string
	Env         string
	Host        string
	Port        int
	SeedOnStart bool
}

type LogCfg struct {
	Level string
}

type DBCfg struct {
	// Driver is either "postgres" or "sqlite".
	Driver      string
	DSN         string
	MaxOpen     int
	MaxIdle     int
	EnableTLS   bool
	AutoMigrate bool
}

type RedisCfg struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	EnableTLS  bool
	ViewTTLSec int
}

type S3Cfg struct {
	Enabled      bool
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UsePathStyle bool
}

// AICfg selects how AI refresh reaches a model. Mode "direct" talks to the
// provider SDK, mode "proxy" posts the request to another unidash instance.
type AICfg struct {
	Mode        string
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	ProxyURL    string
	TimeoutSec  int
	Temperature float64
	MaxTokens   int
}

type TelemetryCfg struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

type Config struct {
	App       AppCfg
	Log       LogCfg
	Database  DBCfg
	Redis     RedisCfg
	S3        S3Cfg
	AI        AICfg
	Telemetry TelemetryCfg
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AIModeDirect = "direct"
	AIModeProxy  = "proxy"

	AIProviderOpenAI    = "openai"
	AIProviderAnthropic = "anthropic"
	AIProviderGemini    = "gemini"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "unidash")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8029)
	v.SetDefault("app.seedOnStart", true)

	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "unidash.db")
	v.SetDefault("database.maxOpen", 10)
	v.SetDefault("database.maxIdle", 5)
	v.SetDefault("database.autoMigrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("redis.viewTTLSec", 60)

	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.bucket", "unidash-documents")
	v.SetDefault("s3.usePathStyle", true)

	v.SetDefault("ai.mode", AIModeDirect)
	v.SetDefault("ai.provider", AIProviderOpenAI)
	v.SetDefault("ai.timeoutSec", 120)
	v.SetDefault("ai.temperature", 0.3)
	v.SetDefault("ai.maxTokens", 4096)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.sampleRatio", 1.0)
}

// Load reads the optional config file at path (or ./unidash.yaml when path is
// empty) and overlays UNIDASH_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("unidash")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("unidash")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// bindEnv makes AutomaticEnv visible to Unmarshal for keys that have no
// default and are absent from the file.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"redis.password", "redis.db", "redis.enableTLS",
		"database.enableTLS",
		"s3.endpoint", "s3.accessKey", "s3.secretKey",
		"ai.apiKey", "ai.baseURL", "ai.model", "ai.proxyURL",
		"telemetry.otlpEndpoint",
	} {
		_ = v.BindEnv(key)
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}

	switch c.AI.Mode {
	case AIModeDirect, AIModeProxy:
	default:
		return fmt.Errorf("unknown ai mode %q", c.AI.Mode)
	}
	switch c.AI.Provider {
	case AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	if c.AI.Mode == AIModeProxy && c.AI.ProxyURL == "" {
		return errors.New("ai proxy url is required in proxy mode")
	}

	if c.S3.Enabled && c.S3.Bucket == "" {
		return errors.New("s3 bucket is required when s3 is enabled")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}
