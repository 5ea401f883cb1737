package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Generator GeneratorConfig `yaml:"generator"`
	Worker    WorkerConfig    `yaml:"worker"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	ScheduleTopic string   `yaml:"schedule_topic"`
	RequestsTopic string   `yaml:"requests_topic"`
	GroupID       string   `yaml:"group_id"`
}

// GeneratorConfig tunes the synthetic schedule run. Zero values fall back
// to the defaults in internal/generator.
type GeneratorConfig struct {
	HorizonDays         int     `yaml:"horizon_days"`
	Seed                int64   `yaml:"seed"`
	TaxRate             float64 `yaml:"tax_rate"`
	Currency            string  `yaml:"currency"`
	LoadFactorMax       float64 `yaml:"load_factor_max"`
	PriceVariation      float64 `yaml:"price_variation"`
	FirstDepartureHour  int     `yaml:"first_departure_hour"`
	SlotSpacingMinutes  int     `yaml:"slot_spacing_minutes"`
	DepartureJitterMin  int     `yaml:"departure_jitter_minutes"`
	ShortHaulMaxMinutes int     `yaml:"short_haul_max_minutes"`
	FlightsCacheTTL     int     `yaml:"flights_cache_ttl_seconds"`
}

type WorkerConfig struct {
	RegenerateHours int `yaml:"regenerate_hours"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
