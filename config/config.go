package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	JWT          JWT
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWT struct {
	Secret      string
	ExpiryHours int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.ExpiryHours = viper.GetInt("JWT_EXPIRY_HOURS")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	if config.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set, tokens will be signed with an empty key")
	}

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
