package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerPort string

	RedisURL string

	JWTSecret string

	AccessTokenMaxAge  int
	RefreshTokenMaxAge int

	// PageSize is the number of posts per listing page.
	PageSize int

	// IndexCacheTTL is the index page cache window in seconds.
	IndexCacheTTL int

	// PreviewLength is the maximum rune count for post/group text previews.
	PreviewLength int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	accessTokenMaxAge := intEnv("ACCESS_TOKEN_MAX_AGE", 900)
	refreshTokenMaxAge := intEnv("REFRESH_TOKEN_MAX_AGE", 2592000)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		ServerPort: serverPort,

		RedisURL: redisURL,

		JWTSecret: os.Getenv("JWT_SECRET"),

		AccessTokenMaxAge:  accessTokenMaxAge,
		RefreshTokenMaxAge: refreshTokenMaxAge,

		PageSize:      intEnv("PAGE_SIZE", 10),
		IndexCacheTTL: intEnv("INDEX_CACHE_TTL", 20),
		PreviewLength: intEnv("PREVIEW_LENGTH", 15),

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
	}, nil
}

// intEnv reads a positive integer env var, falling back to def.
func intEnv(name string, def int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
