package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Port           int
	DatabasePath   string
	ImageDirectory string
	LogDirectory   string
	CameraID       string

	// Inference service (hosted detection model)
	InferenceURL        string
	InferenceAPIKey     string
	InferenceConfidence int // model-side confidence cutoff, 0-100
	InferenceOverlap    int // model-side NMS overlap, 0-100
	InferenceTimeout    int // seconds

	// Geolocation lookup
	GeoLookupURL string
	GeoTimeout   int // seconds

	// Fallback frame dimensions when the model omits or mangles them
	DefaultFrameWidth  int
	DefaultFrameHeight int

	// Spatial dedup grid cell size in pixels
	DedupCellSize int

	Kafka KafkaConfig
}

// KafkaConfig holds settings for the optional task-event producer.
// The producer is disabled when BootstrapServers is empty.
type KafkaConfig struct {
	BootstrapServers string
	Topic            string
	SecurityProtocol string
	SASLMechanism    string
	SASLUsername     string
	SASLPassword     string
	CompressionType  string
	Acks             string
}

func Load() *Config {
	return &Config{
		Port:           getEnvAsInt("PORT", 5001),
		DatabasePath:   getEnv("DATABASE_PATH", filepath.Join(".", "data", "tasks.db")),
		ImageDirectory: getEnv("IMAGE_DIR", filepath.Join(".", "images")),
		LogDirectory:   getEnv("LOG_DIR", filepath.Join(".", "logs")),
		CameraID:       getEnv("CAMERA_ID", "CAM1"),

		InferenceURL:        getEnv("INFERENCE_URL", "http://localhost:9001/smartwaste/1"),
		InferenceAPIKey:     getEnv("INFERENCE_API_KEY", ""),
		InferenceConfidence: getEnvAsInt("INFERENCE_CONFIDENCE", 40),
		InferenceOverlap:    getEnvAsInt("INFERENCE_OVERLAP", 30),
		InferenceTimeout:    getEnvAsInt("INFERENCE_TIMEOUT", 30),

		GeoLookupURL: getEnv("GEO_LOOKUP_URL", "http://ip-api.com/json"),
		GeoTimeout:   getEnvAsInt("GEO_TIMEOUT", 3),

		DefaultFrameWidth:  getEnvAsInt("DEFAULT_FRAME_WIDTH", 640),
		DefaultFrameHeight: getEnvAsInt("DEFAULT_FRAME_HEIGHT", 480),

		DedupCellSize: getEnvAsInt("DEDUP_CELL_SIZE", 50),

		Kafka: KafkaConfig{
			BootstrapServers: getEnv("KAFKA_BOOTSTRAP_SERVERS", ""),
			Topic:            getEnv("KAFKA_TOPIC", "cleanup-tasks"),
			SecurityProtocol: getEnv("KAFKA_SECURITY_PROTOCOL", "PLAINTEXT"),
			SASLMechanism:    getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:     getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:     getEnv("KAFKA_SASL_PASSWORD", ""),
			CompressionType:  getEnv("KAFKA_COMPRESSION_TYPE", "snappy"),
			Acks:             getEnv("KAFKA_ACKS", "all"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
