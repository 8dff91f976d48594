package config

import "os"

// Config holds server configuration loaded from the environment
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	Port      string

	JWTSecret    string
	HostUsername string
	HostPassword string

	// GeocoderBaseURL is the search endpoint of the geocoding collaborator;
	// empty disables geocoding (location answers keep nil coordinates).
	GeocoderBaseURL string

	// BlobStoreURL is the upload endpoint of the file store collaborator.
	BlobStoreURL string
}

// Load reads configuration from the environment with local defaults.
func Load() *Config {
	return &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "partyline"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		Port:            getEnv("PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		HostUsername:    getEnv("HOST_USERNAME", "admin"),
		HostPassword:    getEnv("HOST_PASSWORD", "password123"),
		GeocoderBaseURL: os.Getenv("GEOCODER_URL"),
		BlobStoreURL:    os.Getenv("BLOB_STORE_URL"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
