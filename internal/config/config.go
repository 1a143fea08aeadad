package config

import (
	"os"
)

type Config struct {
	ServerAddress   string
	APIBaseURL      string
	DataDir         string
	StorageBackend  string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	MaxUploadSizeMB int64
}

func Load() *Config {
	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		// Empty is tolerated: metadata degrades to placeholders and
		// uploads fail with an explicit error instead of crashing.
		APIBaseURL:      getEnv("API_BASE_URL", ""),
		DataDir:         getEnv("DATA_DIR", "./data"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "json"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "peenly"),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		MaxUploadSizeMB: 10,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
