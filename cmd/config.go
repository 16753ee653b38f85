package cmd

import "time"

// Config carries every runtime setting the application needs.
// Values come from the environment; see cmd/app/main.go for the mapping.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost        string
	KafkaEventsTopic string

	PaymentGatewayURL string
	PaymentGatewayKey string
	GeoServiceURL     string

	JWTSecret string

	BiddingWindow  time.Duration
	AcceptCooldown time.Duration

	BiddingSweepSchedule string
	EscrowSweepSchedule  string
}
