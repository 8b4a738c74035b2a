package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// SiteInfo holds the defaults used to build page metadata.
type SiteInfo struct {
	Name          string   `mapstructure:"name"`
	BaseURL       string   `mapstructure:"base_url"`
	Title         string   `mapstructure:"title"`
	TitleTemplate string   `mapstructure:"title_template"`
	Description   string   `mapstructure:"description"`
	Keywords      []string `mapstructure:"keywords"`
	Author        string   `mapstructure:"author"`
	Image         string   `mapstructure:"image"`
	TwitterHandle string   `mapstructure:"twitter_handle"`
	Locale        string   `mapstructure:"locale"`
	ThemeColor    string   `mapstructure:"theme_color"`
}

type Config struct {
	Env          string   `mapstructure:"env"`
	Build        string   `mapstructure:"build"`
	Debug        bool     `mapstructure:"debug"`
	TestMode     bool     `mapstructure:"test_mode"`
	AppName      string   `mapstructure:"app_name"`
	RollbarToken string   `mapstructure:"rollbar_token"`
	Timezone     string   `mapstructure:"timezone"` // IANA name of the school's time zone
	Site         SiteInfo `mapstructure:"site"`
}

// Location resolves Timezone, falling back to UTC when it is empty or unknown.
func (c *Config) Location() *time.Location {
	if tz := CleanString(c.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("test_mode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("app_name", "Masomo")
	v.SetDefault("rollbar_token", "")
	v.SetDefault("timezone", "Africa/Lubumbashi")

	v.SetDefault("site.name", "Masomo")
	v.SetDefault("site.base_url", "https://masomo.cd")
	v.SetDefault("site.title", "Masomo - School Management")
	v.SetDefault("site.title_template", "%s | Masomo")
	v.SetDefault("site.description", "Masomo brings administrators, teachers and students of secondary schools together.")
	v.SetDefault("site.keywords", []string{"school", "management", "notices", "students", "teachers"})
	v.SetDefault("site.author", "Masomo")
	v.SetDefault("site.image", "/static/og-image.png")
	v.SetDefault("site.twitter_handle", "@masomo")
	v.SetDefault("site.locale", "en_US")
	v.SetDefault("site.theme_color", "#1976d2")
}

// LoadConfig reads the configuration for env from defaults, an optional config file
// (<dir>/masomo.yaml), an optional dotenv file (<dir>/.env.<env>) and the environment.
// Environment variables are prefixed by env, e.g. DEV_SITE_BASE_URL.
func LoadConfig(env, dir string) (*Config, error) {
	env = strings.ToUpper(CleanString(env))
	if env == "" {
		env = "DEV"
	}

	v := viper.New()
	setDefaults(v)
	if env == "TEST" {
		v.SetDefault("test_mode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}

	v.SetConfigName("masomo")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	conf.Env = env
	return conf, nil
}

// NewConfig loads the configuration for the current ENV (DEV (local; default), TEST, QA, PROD)
// from the "config" directory and dies on failure.
func NewConfig() *Config {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	conf, err := LoadConfig(os.Getenv("ENV"), dir)
	if err != nil {
		log.Fatalf("core.NewConfig: %v", err)
	}
	return conf
}
