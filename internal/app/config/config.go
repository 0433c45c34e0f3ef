package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/database/redis"
	"qualite-pro-core/internal/infrastructure/logger"
	"qualite-pro-core/internal/infrastructure/mail"
	"qualite-pro-core/internal/infrastructure/sms"
	"qualite-pro-core/internal/infrastructure/storage"
	"qualite-pro-core/internal/shared/jwt"

	"github.com/joho/godotenv"
)

// Uniquement variables d'environnement

// Config structure unifiée
type Config struct {
	Environment string
	Server      ServerConfig
	Redis       RedisConfig
	MongoDB     MongoConfig
	JWT         JWTConfig
	Mail        MailConfig
	SMS         SMSConfig
	Scheduler   SchedulerConfig
	Upload      UploadConfig
	Logging     LoggingConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	Seed        SeedConfig
}

// ServerConfig configuration serveur HTTP
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// RedisConfig configuration Redis
type RedisConfig struct {
	Host        string        `env:"REDIS_HOST"`
	Port        int           `env:"REDIS_PORT"`
	Password    string        `env:"REDIS_PASSWORD"`
	Database    int           `env:"REDIS_DATABASE"`
	MaxRetries  int           `env:"REDIS_MAX_RETRIES"`
	PoolSize    int           `env:"REDIS_POOL_SIZE"`
	PoolTimeout time.Duration `env:"REDIS_POOL_TIMEOUT"`
}

// MongoConfig configuration MongoDB
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// JWTConfig configuration des jetons d'accès
type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL"`
	Issuer string        `env:"JWT_ISSUER"`
}

// MailConfig configuration de l'envoi d'emails
type MailConfig struct {
	Provider       string `env:"MAIL_PROVIDER"` // smtp | sendgrid | console
	From           string `env:"MAIL_FROM"`
	FromName       string `env:"MAIL_FROM_NAME"`
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`
	SendgridAPIKey string `env:"SENDGRID_API_KEY"`
}

// SMSConfig configuration du canal SMS
type SMSConfig struct {
	Enabled bool   `env:"SMS_ENABLED"`
	Sender  string `env:"SMS_SENDER"`
}

// SchedulerConfig périodicité des tâches planifiées
type SchedulerConfig struct {
	Enabled          bool          `env:"SCHEDULER_ENABLED"`
	DigestInterval   time.Duration `env:"SCHEDULER_DIGEST_INTERVAL"`
	RetardInterval   time.Duration `env:"SCHEDULER_RETARD_INTERVAL"`
	EcheanceInterval time.Duration `env:"SCHEDULER_ECHEANCE_INTERVAL"`
}

// UploadConfig stockage des pièces jointes
type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR"`
	MaxSizeMB int64  `env:"UPLOAD_MAX_SIZE_MB"`
}

// LoggingConfig configuration logging
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// CORSConfig configuration CORS
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// RateLimitConfig limitation des requêtes d'authentification
type RateLimitConfig struct {
	Enabled          bool          `env:"RATE_LIMIT_ENABLED"`
	RequestsPerSec   float64       `env:"RATE_LIMIT_RPS"`
	Burst            int           `env:"RATE_LIMIT_BURST"`
	MaxLoginAttempts int           `env:"LOGIN_MAX_ATTEMPTS"`
	LoginWindow      time.Duration `env:"LOGIN_ATTEMPT_WINDOW"`
}

// SeedConfig compte administrateur créé au premier démarrage
type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	AdminNom      string `env:"SEED_ADMIN_NOM"`
}

// NewConfig charge la configuration depuis les variables d'environnement uniquement
func NewConfig() (*Config, error) {
	// Charger le fichier .env (optionnel)
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] Warning: Fichier .env non trouvé: %v\n", err)
	}

	config := &Config{}

	config.Environment = getEnv("APP_ENV", "development")

	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 8080),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 60) * time.Second,
	}

	config.Redis = RedisConfig{
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnvInt("REDIS_PORT", 6379),
		Password:    getEnv("REDIS_PASSWORD", ""),
		Database:    getEnvInt("REDIS_DATABASE", 0),
		MaxRetries:  getEnvInt("REDIS_MAX_RETRIES", 3),
		PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", 30) * time.Second,
	}

	defaultMongoURI := ""
	if config.Environment == "development" {
		defaultMongoURI = "mongodb://localhost:27017"
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", defaultMongoURI),
		Database:       getEnv("MONGODB_DATABASE", "qualite_pro"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 100),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET", "dev-secret-qualite-pro-a-changer-en-production"),
		TTL:    getEnvDuration("JWT_TTL", 86400) * time.Second,
		Issuer: getEnv("JWT_ISSUER", "qualite-pro"),
	}

	config.Mail = MailConfig{
		Provider:       getEnv("MAIL_PROVIDER", "console"),
		From:           getEnv("MAIL_FROM", "noreply@qualite-pro.local"),
		FromName:       getEnv("MAIL_FROM_NAME", "Système de Suivi Qualité"),
		SMTPHost:       getEnv("SMTP_HOST", "localhost"),
		SMTPPort:       getEnvInt("SMTP_PORT", 1025),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
	}

	config.SMS = SMSConfig{
		Enabled: getEnvBool("SMS_ENABLED", false),
		Sender:  getEnv("SMS_SENDER", "QUALITE"),
	}

	config.Scheduler = SchedulerConfig{
		Enabled:          getEnvBool("SCHEDULER_ENABLED", true),
		DigestInterval:   getEnvDuration("SCHEDULER_DIGEST_INTERVAL", 900) * time.Second,
		RetardInterval:   getEnvDuration("SCHEDULER_RETARD_INTERVAL", 3600) * time.Second,
		EcheanceInterval: getEnvDuration("SCHEDULER_ECHEANCE_INTERVAL", 21600) * time.Second,
	}

	config.Upload = UploadConfig{
		Dir:       getEnv("UPLOAD_DIR", "./uploads"),
		MaxSizeMB: int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 10)),
	}

	config.Logging = LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "debug"),
		Format: getEnv("LOG_FORMAT", "console"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:4200"}),
		AllowedMethods:   getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}

	config.RateLimit = RateLimitConfig{
		Enabled:          getEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSec:   getEnvFloat("RATE_LIMIT_RPS", 5),
		Burst:            getEnvInt("RATE_LIMIT_BURST", 10),
		MaxLoginAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      getEnvDuration("LOGIN_ATTEMPT_WINDOW", 900) * time.Second,
	}

	config.Seed = SeedConfig{
		AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@qualite-pro.local"),
		AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		AdminNom:      getEnv("SEED_ADMIN_NOM", "Administrateur"),
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("validation configuration échouée: %w", err)
	}

	fmt.Printf("[CONFIG] ✅ Configuration chargée pour environnement: %s\n", config.Environment)
	return config, nil
}

func (c *Config) GetServer() ServerConfig       { return c.Server }
func (c *Config) GetRedis() RedisConfig         { return c.Redis }
func (c *Config) GetMongoDB() MongoConfig       { return c.MongoDB }
func (c *Config) GetJWT() JWTConfig             { return c.JWT }
func (c *Config) GetScheduler() SchedulerConfig { return c.Scheduler }
func (c *Config) GetLogging() LoggingConfig     { return c.Logging }
func (c *Config) GetCORS() CORSConfig           { return c.CORS }
func (c *Config) GetRateLimit() RateLimitConfig { return c.RateLimit }

// Convertisseurs vers configurations infrastructure

func NewRedisConfig(config *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:        config.Redis.Host,
		Port:        config.Redis.Port,
		Password:    config.Redis.Password,
		Database:    config.Redis.Database,
		MaxRetries:  config.Redis.MaxRetries,
		PoolSize:    config.Redis.PoolSize,
		PoolTimeout: config.Redis.PoolTimeout,
	}
}

func NewMongoConfig(config *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:            config.MongoDB.URI,
		Database:       config.MongoDB.Database,
		ConnectTimeout: config.MongoDB.ConnectTimeout,
		MaxPoolSize:    config.MongoDB.MaxPoolSize,
	}
}

func NewJWTConfig(config *Config) *jwt.Config {
	return &jwt.Config{
		Secret: config.JWT.Secret,
		TTL:    config.JWT.TTL,
		Issuer: config.JWT.Issuer,
	}
}

func NewLoggerConfig(config *Config) *logger.Config {
	return &logger.Config{
		Level:  config.Logging.Level,
		Format: config.Logging.Format,
	}
}

func NewMailConfig(config *Config) *mail.Config {
	return &mail.Config{
		Provider:       config.Mail.Provider,
		From:           config.Mail.From,
		FromName:       config.Mail.FromName,
		SMTPHost:       config.Mail.SMTPHost,
		SMTPPort:       config.Mail.SMTPPort,
		SMTPUsername:   config.Mail.SMTPUsername,
		SMTPPassword:   config.Mail.SMTPPassword,
		SendgridAPIKey: config.Mail.SendgridAPIKey,
	}
}

func NewSMSConfig(config *Config) *sms.Config {
	return &sms.Config{
		Enabled: config.SMS.Enabled,
		Sender:  config.SMS.Sender,
	}
}

func NewStorageConfig(config *Config) *storage.Config {
	return &storage.Config{
		BaseDir:      config.Upload.Dir,
		MaxSizeBytes: config.Upload.MaxSizeMB * 1024 * 1024,
	}
}

// Helpers pour parsing variables d'environnement
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration retourne un nombre de secondes, à multiplier par time.Second
func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// validateConfig valide la configuration selon l'environnement
func validateConfig(config *Config) error {
	env := config.Environment

	if env != "development" && env != "docker" {
		return fmt.Errorf("environnement non supporté: %s (utilisez 'development' ou 'docker')", env)
	}

	switch config.Mail.Provider {
	case "smtp", "sendgrid", "console":
	default:
		return fmt.Errorf("fournisseur email non supporté: %s (smtp, sendgrid ou console)", config.Mail.Provider)
	}

	missingVars := []string{}

	// Variables critiques en mode docker (production/staging)
	if env == "docker" {
		if os.Getenv("JWT_SECRET") == "" {
			missingVars = append(missingVars, "JWT_SECRET")
		}
		if config.MongoDB.URI == "" {
			missingVars = append(missingVars, "MONGODB_URI")
		}
		if config.Mail.Provider == "sendgrid" && config.Mail.SendgridAPIKey == "" {
			missingVars = append(missingVars, "SENDGRID_API_KEY")
		}
		if config.Mail.Provider == "smtp" && config.Mail.SMTPPassword == "" {
			missingVars = append(missingVars, "SMTP_PASSWORD")
		}

		if config.Redis.Password == "" {
			fmt.Printf("[CONFIG] ⚠️ REDIS_PASSWORD non défini pour environnement docker\n")
		}
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("variables critiques manquantes pour environnement docker: %v", missingVars)
	}

	if len(config.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET trop court (32 caractères minimum)")
	}

	return nil
}
