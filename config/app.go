package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/tripkit/service"
)

// 模型类型
const (
	ModelLinear = "linear" // 本地 JSON 线性模型
	ModelRPC    = "rpc"    // 自定义 HTTP 推理服务
	ModelKServe = "kserve" // KServe / TF Serving
)

// 目录来源
const (
	CatalogFile     = "file"
	CatalogMemory   = "memory" // 进程内 Store，由 seed_file 初始化，用于本地开发
	CatalogRedis    = "redis"
	CatalogPostgres = "postgres"
)

// EnvPrefix 是环境变量覆盖的前缀
const EnvPrefix = "TRIPKIT_"

// AppConfig 是进程级配置，启动时加载一次。
// 加载顺序：默认值 -> YAML 文件 -> .env -> TRIPKIT_* 环境变量。
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Flight FlightConfig `yaml:"flight"`
	Hotel  HotelConfig  `yaml:"hotel"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"` // gin 模式：debug / release / test
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

type FlightConfig struct {
	// Schema 特征 schema 来源：本地路径或 http(s) URL，空则使用内置列
	Schema string `yaml:"schema"`
	// Scaler 标准化参数来源，空则不做标准化（模型服务自带 scaler）
	Scaler      string        `yaml:"scaler"`
	LoadTimeout time.Duration `yaml:"load_timeout"`
	// Strict 为 true 时未知类别返回 400
	Strict bool        `yaml:"strict"`
	Model  ModelConfig `yaml:"model"`
}

type ModelConfig struct {
	Type     string        `yaml:"type"`
	Path     string        `yaml:"path"`     // linear
	Endpoint string        `yaml:"endpoint"` // rpc
	Name     string        `yaml:"name"`
	Timeout  time.Duration `yaml:"timeout"`
	// KServe 仅 type=kserve 时使用
	KServe service.ServiceConfig `yaml:"kserve"`
}

type HotelConfig struct {
	Catalog CatalogConfig `yaml:"catalog"`
	// Pipeline 可选的 pipeline YAML 路径，替换默认链路
	Pipeline string `yaml:"pipeline"`
	// Rule 可选的 CEL 下架规则，表达式为 true 的记录被过滤
	Rule string `yaml:"rule"`
}

type CatalogConfig struct {
	Source   string         `yaml:"source"`
	Path     string         `yaml:"path"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	// SeedFile 非空时，Store（memory / redis）中没有目录则用该文件初始化
	SeedFile string `yaml:"seed_file"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default 返回默认配置：本地 CSV 目录 + 本地线性模型。
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Flight: FlightConfig{
			LoadTimeout: 10 * time.Second,
			Model: ModelConfig{
				Type:    ModelLinear,
				Path:    "data/flight_model.json",
				Timeout: 5 * time.Second,
			},
		},
		Hotel: HotelConfig{
			Catalog: CatalogConfig{
				Source: CatalogFile,
				Path:   "data/hotels.csv",
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load 加载配置。path 为空时只使用默认值与环境变量；.env 不存在时忽略。
func Load(path string) (*AppConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv 用环境变量覆盖配置，lookup 一般为 os.LookupEnv。
func (c *AppConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	if port, ok := lookup("PORT"); ok && port != "" {
		c.Server.Addr = ":" + port
	}
	str("ADDR", &c.Server.Addr)
	str("GIN_MODE", &c.Server.Mode)
	str("LOG_LEVEL", &c.Log.Level)
	str("FLIGHT_SCHEMA", &c.Flight.Schema)
	str("FLIGHT_SCALER", &c.Flight.Scaler)
	str("MODEL_TYPE", &c.Flight.Model.Type)
	str("MODEL_PATH", &c.Flight.Model.Path)
	str("MODEL_ENDPOINT", &c.Flight.Model.Endpoint)
	str("MODEL_NAME", &c.Flight.Model.Name)
	str("KSERVE_ENDPOINT", &c.Flight.Model.KServe.Endpoint)
	str("KSERVE_MODEL", &c.Flight.Model.KServe.ModelName)
	str("CATALOG_SOURCE", &c.Hotel.Catalog.Source)
	str("CATALOG_PATH", &c.Hotel.Catalog.Path)
	str("CATALOG_SEED_FILE", &c.Hotel.Catalog.SeedFile)
	str("REDIS_ADDR", &c.Hotel.Catalog.Redis.Addr)
	str("REDIS_PASSWORD", &c.Hotel.Catalog.Redis.Password)
	str("REDIS_KEY", &c.Hotel.Catalog.Redis.Key)
	str("POSTGRES_DSN", &c.Hotel.Catalog.Postgres.DSN)
	str("POSTGRES_TABLE", &c.Hotel.Catalog.Postgres.Table)
	str("HOTEL_PIPELINE", &c.Hotel.Pipeline)
	str("HOTEL_RULE", &c.Hotel.Rule)

	if v, ok := lookup(EnvPrefix + "REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Hotel.Catalog.Redis.DB = db
	}
	if v, ok := lookup(EnvPrefix + "FLIGHT_STRICT"); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sFLIGHT_STRICT: %w", EnvPrefix, err)
		}
		c.Flight.Strict = strict
	}
	if v, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	return nil
}

// Validate 校验必填项与枚举值。
func (c *AppConfig) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	for _, o := range c.Server.CORSOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("server.cors_origins: bad origin %q", o)
		}
	}

	m := c.Flight.Model
	switch m.Type {
	case ModelLinear:
		if m.Path == "" {
			return fmt.Errorf("flight.model.path is required for linear model")
		}
	case ModelRPC:
		if m.Endpoint == "" {
			return fmt.Errorf("flight.model.endpoint is required for rpc model")
		}
	case ModelKServe:
		if err := service.ValidateConfig(&m.KServe); err != nil {
			return fmt.Errorf("flight.model.kserve: %w", err)
		}
	default:
		return fmt.Errorf("unknown flight.model.type %q (supported: %s, %s, %s)", m.Type, ModelLinear, ModelRPC, ModelKServe)
	}

	cat := c.Hotel.Catalog
	switch cat.Source {
	case CatalogFile:
		if cat.Path == "" {
			return fmt.Errorf("hotel.catalog.path is required for file source")
		}
	case CatalogMemory:
		if cat.SeedFile == "" {
			return fmt.Errorf("hotel.catalog.seed_file is required for memory source")
		}
	case CatalogRedis:
		if cat.Redis.Addr == "" {
			return fmt.Errorf("hotel.catalog.redis.addr is required for redis source")
		}
	case CatalogPostgres:
		if cat.Postgres.DSN == "" {
			return fmt.Errorf("hotel.catalog.postgres.dsn is required for postgres source")
		}
	default:
		return fmt.Errorf("unknown hotel.catalog.source %q (supported: %s, %s, %s, %s)", cat.Source, CatalogFile, CatalogMemory, CatalogRedis, CatalogPostgres)
	}
	return nil
}
