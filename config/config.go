package config

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// UploadResourceConfig maps one resource collection to its upload
// subfolder and filename prefix.
type UploadResourceConfig struct {
	Subfolder string `mapstructure:"subfolder"`
	Prefix    string `mapstructure:"prefix"`
}

type UploadsConfig struct {
	Root          string                          `mapstructure:"root"`
	MaxFiles      int                             `mapstructure:"maxFiles"`
	MaxFileSizeMB int64                           `mapstructure:"maxFileSizeMB"`
	Resources     map[string]UploadResourceConfig `mapstructure:"resources"`
}

type StorageConfig struct {
	// Backend is "disk" or "s3".
	Backend string `mapstructure:"backend"`
}

type S3Config struct {
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	AccessKeyID      string `mapstructure:"accessKeyID"`
	SecretAccessKey  string `mapstructure:"secretAccessKey"`
	CloudFrontDomain string `mapstructure:"cloudFrontDomain"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Uploads UploadsConfig `mapstructure:"uploads"`
	Storage StorageConfig `mapstructure:"storage"`
	S3      S3Config      `mapstructure:"s3"`
	Log     LogConfig     `mapstructure:"log"`
}

// LoadConfig reads configuration from file and overrides it with environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("uploads.root", "UPLOADS_ROOT")
	viper.BindEnv("storage.backend", "STORAGE_BACKEND")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("s3.cloudFrontDomain", "S3_CLOUDFRONT_DOMAIN")
	viper.BindEnv("log.file", "LOG_FILE")
	viper.BindEnv("log.level", "LOG_LEVEL")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.dbName", "fleet_admin")
	viper.SetDefault("storage.backend", "disk")
	viper.SetDefault("uploads.root", "./uploads")
	viper.SetDefault("uploads.maxFiles", 5)
	viper.SetDefault("uploads.maxFileSizeMB", 5)
	viper.SetDefault("log.file", "./logs/app.log")
	viper.SetDefault("log.level", "info")

	// If the config file is missing, viper falls back to env vars and defaults.
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	// Built-in resource mappings when the file does not define any.
	if config.Uploads.Resources == nil {
		config.Uploads.Resources = map[string]UploadResourceConfig{
			"vehicles":  {Subfolder: "vehicles", Prefix: "vehicle"},
			"employees": {Subfolder: "employees", Prefix: "employee"},
		}
	}

	return
}
