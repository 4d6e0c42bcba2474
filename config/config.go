package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the HTTP listener settings.
type WebConfig struct {
	Host        string   `yaml:"host" json:"host"`
	Port        int      `yaml:"port" json:"port"`
	Secret      string   `yaml:"secret" json:"secret"`
	CorsOrigins []string `yaml:"cors_origins" json:"cors_origins"`
}

// DBConfig holds the database connection settings.
type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

// ShopConfig holds storefront behavior settings.
type ShopConfig struct {
	Currency        string `yaml:"currency" json:"currency"`
	StripeSecretKey string `yaml:"stripe_secret_key" json:"stripe_secret_key"`
	AdminEmail      string `yaml:"admin_email" json:"admin_email"`
	// LegacyZeroStockDrop refuses orders that would leave a product with
	// exactly zero stock, matching the behavior of the original storefront.
	LegacyZeroStockDrop bool `yaml:"legacy_zero_stock_drop" json:"legacy_zero_stock_drop"`
	UnpaidSweepDays     int  `yaml:"unpaid_sweep_days" json:"unpaid_sweep_days"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system" json:"system"`
	Web      WebConfig  `yaml:"web" json:"web"`
	Database DBConfig   `yaml:"database" json:"database"`
	Shop     ShopConfig `yaml:"shop" json:"shop"`
	Logger   LogConfig  `yaml:"logger" json:"logger"`
}

// DefaultAppConfig is the baseline configuration; the yaml file and
// environment variables override it in that order.
var DefaultAppConfig = AppConfig{
	System: SysConfig{
		Appid:    "AutimaPro",
		Location: "Asia/Shanghai",
		Workdir:  "/var/autimapro",
	},
	Web: WebConfig{
		Host:        "0.0.0.0",
		Port:        5000,
		Secret:      "9b6de5cc-autima-pro-1416-868a66e4c4a2",
		CorsOrigins: []string{"*"},
	},
	Database: DBConfig{
		Type:   "postgres",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "autimapro",
		User:   "postgres",
		Passwd: "",
	},
	Shop: ShopConfig{
		Currency:        "usd",
		AdminEmail:      "admin@autimapro.com",
		UnpaidSweepDays: 7,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/autimapro/autimapro.log",
	},
}

func setEnvString(name string, f func(string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

func setEnvInt(name string, f func(int)) {
	if v := os.Getenv(name); v != "" {
		f(cast.ToInt(v))
	}
}

func setEnvBool(name string, f func(bool)) {
	if v := os.Getenv(name); v != "" {
		f(cast.ToBool(v))
	}
}

// LoadConfig reads the configuration file at path (ignored when absent) and
// applies environment overrides.
func LoadConfig(path string) *AppConfig {
	cfg := DefaultAppConfig
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}

	setEnvString("AUTIMAPRO_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvBool("AUTIMAPRO_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })
	setEnvString("AUTIMAPRO_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt("AUTIMAPRO_WEB_PORT", func(v int) { cfg.Web.Port = v })
	setEnvString("AUTIMAPRO_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvString("AUTIMAPRO_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvString("AUTIMAPRO_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt("AUTIMAPRO_DB_PORT", func(v int) { cfg.Database.Port = v })
	setEnvString("AUTIMAPRO_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvString("AUTIMAPRO_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvString("AUTIMAPRO_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvBool("AUTIMAPRO_DB_DEBUG", func(v bool) { cfg.Database.Debug = v })
	setEnvString("AUTIMAPRO_STRIPE_SECRET_KEY", func(v string) { cfg.Shop.StripeSecretKey = v })
	setEnvString("AUTIMAPRO_SHOP_CURRENCY", func(v string) { cfg.Shop.Currency = v })
	setEnvString("AUTIMAPRO_SHOP_ADMIN_EMAIL", func(v string) { cfg.Shop.AdminEmail = v })
	setEnvBool("AUTIMAPRO_SHOP_LEGACY_ZERO_STOCK_DROP", func(v bool) { cfg.Shop.LegacyZeroStockDrop = v })
	setEnvString("AUTIMAPRO_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	return &cfg
}
