package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"p9e.in/agentreport/models"
	"p9e.in/agentreport/pkg/document"
)

// Settings is the service configuration.
type Settings struct {
	Port             string            `mapstructure:"port"`
	DBDSN            string            `mapstructure:"db_dsn"`
	LogLevel         string            `mapstructure:"log_level"`
	LogFormat        string            `mapstructure:"log_format"`
	JWTSecret        string            `mapstructure:"jwt_secret"`
	TemplatesDir     string            `mapstructure:"templates_dir"`
	ReportsDir       string            `mapstructure:"reports_dir"`
	DocType          string            `mapstructure:"doc_type"`
	UseGCS           bool              `mapstructure:"use_gcs"`
	GCSBucket        string            `mapstructure:"gcs_bucket"`
	SchemaVersion    int               `mapstructure:"schema_version"`
	StrictValidation bool              `mapstructure:"strict_validation"`
	Origins          string            `mapstructure:"origins"`
	Vegetables       map[string]string `mapstructure:"vegetables"`
	Fruits           map[string]string `mapstructure:"fruits"`
}

var defaults = map[string]any{
	"port":              "8080",
	"db_dsn":            "",
	"log_level":         "info",
	"log_format":        "console",
	"jwt_secret":        "",
	"templates_dir":     "./templates",
	"reports_dir":       "./reports",
	"doc_type":          "xlsx",
	"use_gcs":           false,
	"gcs_bucket":        "",
	"schema_version":    int(models.DefaultSchema),
	"strict_validation": false,
	"origins":           "*",
	"vegetables": map[string]string{
		"томат":     "tomatoes",
		"огурец":    "cucumbers",
		"перец":     "peppers",
		"картофель": "potatoes",
		"морковь":   "carrots",
		"лук":       "onions",
	},
	"fruits": map[string]string{
		"яблоко":   "apples",
		"груша":    "pears",
		"апельсин": "oranges",
		"мандарин": "mandarins",
		"лимон":    "lemons",
		"виноград": "grapes",
		"банан":    "bananas",
	},
}

// Load reads .env, the environment and, when CONFIG_FILE names one, a
// YAML file. Environment variables win over the file.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		if _, ok := value.(map[string]string); ok {
			continue
		}
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	s.Vegetables = lowerKeys(v.GetStringMapString("vegetables"))
	s.Fruits = lowerKeys(v.GetStringMapString("fruits"))
	return s, s.Validate()
}

func lowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}

// Validate rejects settings the service cannot start with.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := document.DriverFor(s.DocType); err != nil {
		errs = append(errs, err)
	}
	if _, err := models.ParseSchemaVersion(s.SchemaVersion); err != nil {
		errs = append(errs, err)
	}
	if s.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	return errors.Join(errs...)
}

// Schema is the validated schema version.
func (s *Settings) Schema() models.SchemaVersion {
	v, err := models.ParseSchemaVersion(s.SchemaVersion)
	if err != nil {
		return models.DefaultSchema
	}
	return v
}
