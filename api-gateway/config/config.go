package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration. BACKOFFICE_SERVICE_URLS may
// list several comma-separated instances for round-robin balancing.
func LoadConfig() *GatewayConfig {
	baseURL := getEnv("BACKOFFICE_SERVICE_URL", "http://localhost:8080")
	instances := strings.Split(getEnv("BACKOFFICE_SERVICE_URLS", baseURL), ",")

	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"backoffice": {
				Name:        "backoffice-service",
				BaseURL:     baseURL,
				Instances:   instances,
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
