package config

import "os"

type Config struct {
	WarehouseDSN string
	LogLevel     string
	Port         string
}

func New() *Config {
	return &Config{
		WarehouseDSN: os.Getenv("WAREHOUSEDSN"),
		LogLevel:     os.Getenv("LOGLEVEL"),
		Port:         getPort(os.Getenv("PORT")),
	}
}

func getPort(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}
