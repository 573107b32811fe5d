package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Workers  WorkerConfig
	Backup   BackupConfig
	Server   ServerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type WorkerConfig struct {
	ReconcileInterval time.Duration
	LowStockInterval  time.Duration
	ReportInterval    time.Duration
	BackupInterval    time.Duration
	LowStockThreshold int
	// StopTimeout bounds how long Supervisor.Stop waits for workers to join.
	StopTimeout time.Duration
}

type BackupConfig struct {
	Dir string
}

type ServerConfig struct {
	Addr         string
	SeedDemoData bool
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Workers:  GetWorkerConfig(),
		Backup: BackupConfig{
			Dir: getEnv("BACKUP_DIR", "backups"),
		},
		Server: ServerConfig{
			Addr:         getEnv("SERVER_ADDR", ":8080"),
			SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
		},
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test DB on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test Redis on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Workers:  GetWorkerConfig(),
		Backup:   BackupConfig{Dir: os.TempDir()},
		Server:   ServerConfig{Addr: ":0"},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

// GetWorkerConfig returns background worker intervals. Defaults match the
// cadence the system runs with in production: reconcile 30s, low-stock scan
// 10s, report 6m, backup 5m.
func GetWorkerConfig() WorkerConfig {
	return WorkerConfig{
		ReconcileInterval: getEnvDuration("WORKER_RECONCILE_INTERVAL", 30*time.Second),
		LowStockInterval:  getEnvDuration("WORKER_LOW_STOCK_INTERVAL", 10*time.Second),
		ReportInterval:    getEnvDuration("WORKER_REPORT_INTERVAL", 360*time.Second),
		BackupInterval:    getEnvDuration("WORKER_BACKUP_INTERVAL", 300*time.Second),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
		StopTimeout:       getEnvDuration("WORKER_STOP_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		panic(err)
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
