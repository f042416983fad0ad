package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	PostgreSQLConfig PostgreSQLConfig
	JWTSecret        string
	KafkaConfig      KafkaConfig
	SMTPConfig       SMTPConfig
	KakaoConfig      KakaoConfig
	StorageConfig    StorageConfig
	TracingConfig    TracingConfig
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type KakaoConfig struct {
	AuthURL     string
	TokenURL    string
	UserInfoURL string
	RestAPIKey  string
	RedirectURI string
}

type StorageConfig struct {
	BaseURL string
	Bucket  string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		KakaoConfig: KakaoConfig{
			AuthURL:     os.Getenv("KAKAO_LOGIN_AUTH"),
			TokenURL:    os.Getenv("KAKAO_TOKEN_URL"),
			UserInfoURL: os.Getenv("KAKAO_USER_INFO_URL"),
			RestAPIKey:  os.Getenv("KAKAO_REST_API_KEY"),
			RedirectURI: os.Getenv("KAKAO_REDIRECT_URI"),
		},
		StorageConfig: StorageConfig{
			BaseURL: os.Getenv("STORAGE_BASE_URL"),
			Bucket:  os.Getenv("STORAGE_BUCKET"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err == nil {
		conf.SMTPConfig.Port = smtpPort
	}

	return &conf
}
