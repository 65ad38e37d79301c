package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ===========================
// 應用程式設定
// ===========================

// Config 應用程式設定
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	Data         DataConfig         `mapstructure:"data" validate:"required"`
	Notification NotificationConfig `mapstructure:"notification"`
	Editing      EditingConfig      `mapstructure:"editing"`
	Messaging    MessagingConfig    `mapstructure:"messaging"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Log          LogConfig          `mapstructure:"log"`
}

// ServerConfig HTTP 伺服器設定
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DataConfig 資料檔案路徑
type DataConfig struct {
	CustomersPath string `mapstructure:"customers_path" validate:"required"`
	DocumentPath  string `mapstructure:"document_path"`
	BackupDir     string `mapstructure:"backup_dir"`
	TemplatesPath string `mapstructure:"templates_path"`
}

// NotificationConfig Discord 通知設定
type NotificationConfig struct {
	// WebhookURL 可為空；未設定時通知呼叫失敗，但伺服器仍可啟動
	WebhookURL    string        `mapstructure:"webhook_url" validate:"omitempty,url"`
	Username      string        `mapstructure:"username"`
	HorizonDays   int           `mapstructure:"horizon_days" validate:"min=0,max=365"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RatePerMinute int           `mapstructure:"rate_per_minute" validate:"min=1"`
}

// EditingConfig 行內編輯的自動保存設定
type EditingConfig struct {
	Debounce time.Duration `mapstructure:"debounce" validate:"gt=0"`
}

// MessagingConfig 訊息範本使用的寄件者資料
type MessagingConfig struct {
	CompanyName   string `mapstructure:"company_name"`
	PersonName    string `mapstructure:"person_name"`
	PersonReading string `mapstructure:"person_reading"`
	MaterialURL   string `mapstructure:"material_url"`
	ServiceURL    string `mapstructure:"service_url"`
}

// DatabaseConfig 通知紀錄資料庫（SQLite）
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig 日誌設定（含檔案輪替）
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Load 讀取設定
//
// 順序：.env → config.yaml（./configs 或 .，configFile 非空時直接使用該檔）→ 環境變數。
// 設定檔不存在時只用預設值與環境變數。
func Load(configFile string) (*Config, error) {
	// .env 不存在不是錯誤
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate 檢查設定值
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

const defaultMaterialURL = "https://drive.google.com/file/d/1s_2jWoBRvA3PiRIrd4mNqoJjTFBhBU3n/view?usp=drive_link"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("data.customers_path", "public/data/customers.md")
	v.SetDefault("data.document_path", "../顧客管理データ.md")
	v.SetDefault("data.backup_dir", "../backups")
	v.SetDefault("data.templates_path", "public/data/templates.md")

	v.SetDefault("notification.username", "営業通知Bot")
	v.SetDefault("notification.horizon_days", 1)
	v.SetDefault("notification.timeout", 10*time.Second)
	v.SetDefault("notification.rate_per_minute", 6)

	v.SetDefault("editing.debounce", 2*time.Second)

	v.SetDefault("messaging.company_name", "ゲーム開発所RYURYU")
	v.SetDefault("messaging.person_name", "岡本竜弥")
	v.SetDefault("messaging.person_reading", "おかもと りゅうや")
	v.SetDefault("messaging.material_url", defaultMaterialURL)
	v.SetDefault("messaging.service_url", defaultMaterialURL)

	v.SetDefault("database.path", "data/crm.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
}

func bindEnvVariables(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Data
	v.BindEnv("data.customers_path", "CUSTOMERS_PATH")
	v.BindEnv("data.document_path", "CUSTOMER_DOCUMENT_PATH")
	v.BindEnv("data.backup_dir", "BACKUP_DIR")
	v.BindEnv("data.templates_path", "TEMPLATES_PATH")

	// Notification
	v.BindEnv("notification.webhook_url", "DISCORD_WEBHOOK_URL")
	v.BindEnv("notification.horizon_days", "NOTIFY_HORIZON_DAYS")

	// Database
	v.BindEnv("database.path", "DATABASE_PATH")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.file_path", "LOG_FILE")
}
