package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/palemoky/card-showdown/internal/apperrors"
)

// 默认值
const (
	defaultBackend      = BackendNone
	defaultRedisAddr    = "localhost:6379"
	defaultSQLitePath   = "data/card-showdown.db"
	defaultHistoryLimit = 100
	defaultRounds       = 10000
	defaultWorkers      = 4
	defaultLogLevel     = "info"
	defaultSoundDir     = "assets/sounds"

	requiredPlayers = 4
)

// 存储后端
const (
	BackendNone   = "none"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

var defaultPlayers = []string{"Player 1", "Player 2", "Player 3", "Player 4"}

// Config 全局配置
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Simulate SimulateConfig `yaml:"simulate"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Log      LogConfig      `yaml:"log"`
	Sound    SoundConfig    `yaml:"sound"`
}

// GameConfig 对局配置
type GameConfig struct {
	Players      []string `yaml:"players"`       // 座位顺序的玩家名，固定 4 人
	Seed         int64    `yaml:"seed"`          // 0 表示每次随机
	HistoryLimit int      `yaml:"history_limit"` // 保留的最近对局数
}

// SimulateConfig 批量模拟配置
type SimulateConfig struct {
	Rounds  int `yaml:"rounds"`
	Workers int `yaml:"workers"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Backend string `yaml:"backend"` // none / redis / sqlite
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SQLiteConfig SQLite 配置
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir   string `yaml:"dir"` // 为空时写到 ~/.card-showdown
	Level string `yaml:"level"`
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Load 加载配置文件，依次应用默认值和环境变量
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default 返回默认配置（环境变量仍然生效）
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg
}

// Validate 校验配置
func (c *Config) Validate() error {
	if len(c.Game.Players) != requiredPlayers {
		return apperrors.InvalidArgument("需要恰好 %d 名玩家，配置了 %d 名", requiredPlayers, len(c.Game.Players))
	}
	switch c.Storage.Backend {
	case BackendNone, BackendRedis, BackendSQLite:
	default:
		return apperrors.InvalidArgument("未知的存储后端 %q", c.Storage.Backend)
	}
	if c.Simulate.Rounds <= 0 || c.Simulate.Workers <= 0 {
		return apperrors.InvalidArgument("模拟局数和并发数必须为正数")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if len(c.Game.Players) == 0 {
		c.Game.Players = append([]string(nil), defaultPlayers...)
	}
	if c.Game.HistoryLimit == 0 {
		c.Game.HistoryLimit = defaultHistoryLimit
	}
	if c.Simulate.Rounds == 0 {
		c.Simulate.Rounds = defaultRounds
	}
	if c.Simulate.Workers == 0 {
		c.Simulate.Workers = defaultWorkers
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = defaultSQLitePath
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Sound.Dir == "" {
		c.Sound.Dir = defaultSoundDir
	}
}

// applyEnv 环境变量覆盖配置文件
func (c *Config) applyEnv() {
	if v := os.Getenv("GAME_PLAYERS"); v != "" {
		c.Game.Players = splitList(v)
	}
	envInt64("GAME_SEED", &c.Game.Seed)
	envInt("GAME_HISTORY_LIMIT", &c.Game.HistoryLimit)
	envInt("SIMULATE_ROUNDS", &c.Simulate.Rounds)
	envInt("SIMULATE_WORKERS", &c.Simulate.Workers)
	envString("STORAGE_BACKEND", &c.Storage.Backend)
	envString("REDIS_ADDR", &c.Redis.Addr)
	envString("REDIS_PASSWORD", &c.Redis.Password)
	envInt("REDIS_DB", &c.Redis.DB)
	envString("SQLITE_PATH", &c.SQLite.Path)
	envString("LOG_DIR", &c.Log.Dir)
	envString("LOG_LEVEL", &c.Log.Level)
	envBool("SOUND_ENABLED", &c.Sound.Enabled)
	envString("SOUND_DIR", &c.Sound.Dir)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func envInt64(key string, dst *int64) {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
