package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Store backends for daily calorie records. Users, sessions and goals are
// always kept in Postgres, so every backend still needs the DB_* settings.
const (
	StorePostgres = "postgres"
	StoreDynamoDB = "dynamodb"
	StoreMemory   = "memory"
)

type Config struct {
	Port    string
	GinMode string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	StoreBackend        string
	DynamoCaloriesTable string
	DynamoUserDateIndex string

	AWSRegion     string
	S3Region      string
	S3Bucket      string
	CloudFrontURL string
	SESEmail      string

	JWTSecret string
	JWTTTL    time.Duration

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	RekognitionEnabled bool

	Location           *time.Location
	DefaultCalorieGoal int
	LogLevel           string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getEnv("DB_PORT", "5432"),

		StoreBackend:        strings.ToLower(getEnv("STORE_BACKEND", StorePostgres)),
		DynamoCaloriesTable: getEnv("DYNAMO_CALORIES_TABLE", "calories"),
		DynamoUserDateIndex: getEnv("DYNAMO_USER_DATE_INDEX", "userId-date-index"),

		AWSRegion:     os.Getenv("AWS_REGION"),
		S3Region:      os.Getenv("S3_REGION"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		CloudFrontURL: os.Getenv("CLOUDFRONT_URL"),
		SESEmail:      os.Getenv("SES_EMAIL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1"),

		RekognitionEnabled: os.Getenv("REKOGNITION_ENABLED") == "true",
		LogLevel:           getEnv("LOG_LEVEL", "normal"),
	}
	if cfg.S3Region == "" {
		cfg.S3Region = cfg.AWSRegion // fallback
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.GeminiTimeout, err = getDuration("GEMINI_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	cfg.DefaultCalorieGoal = 2088
	if v := os.Getenv("DEFAULT_CALORIE_GOAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("DEFAULT_CALORIE_GOAL must be a positive integer, got %q", v)
		}
		cfg.DefaultCalorieGoal = n
	}

	cfg.Location = time.Local
	if name := os.Getenv("TZ_NAME"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("invalid TZ_NAME %q: %w", name, err)
		}
		cfg.Location = loc
	}

	switch cfg.StoreBackend {
	case StorePostgres, StoreDynamoDB, StoreMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	if cfg.StoreBackend == StoreDynamoDB && cfg.AWSRegion == "" {
		return nil, fmt.Errorf("AWS_REGION is required for the dynamodb store")
	}
	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// InitDB opens the Postgres connection through lib/pq and migrates the schema.
func InitDB(cfg *Config) error {
	var err error
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        cfg.DSN(),
	}), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.DailyGoal{},
		&models.DailyCalorieRecord{},
	)
	if err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
