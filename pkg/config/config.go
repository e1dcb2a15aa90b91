package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config regroupe la configuration de l'application (lecture via Viper
// depuis l'environnement et optionnellement un fichier).
type Config struct {
	App     AppConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Analyse AnalyseConfig
	Sirene  SireneConfig
	BAN     BANConfig
}

// AppConfig configuration générale de l'application.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// JWTConfig configuration des jetons d'accès à l'API.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// HTTPConfig configuration du serveur HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr renvoie l'adresse d'écoute (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AnalyseConfig paramètres du moteur d'analyse.
type AnalyseConfig struct {
	// Strictness règle l'extraction des identifiants non étiquetés :
	// "strict" (clé de Luhn exigée) ou "lenient" (mot-clé voisin suffit).
	Strictness string
	// Pondérations du score final ; leur somme doit faire 1.0.
	WeightDocuments   float64
	WeightConsistency float64
	WeightRedFlags    float64
	// CallTimeout borne chaque appel de corroboration externe.
	CallTimeout time.Duration
	// OverallTimeout borne l'analyse complète d'un dossier.
	OverallTimeout time.Duration
}

// SireneConfig accès à l'API Sirene de l'INSEE.
type SireneConfig struct {
	BaseURL string
	Token   string
}

// BANConfig accès à la Base Adresse Nationale.
type BANConfig struct {
	BaseURL string
}

// Load lit la configuration depuis les variables d'environnement (et
// optionnellement un fichier .env). Les variables d'environnement priment.
func Load() (*Config, error) {
	v := viper.New()

	// Optionnel : fichier de configuration (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // l'absence du fichier n'est pas une erreur

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "verification-antifraude"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "verification-antifraude"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Analyse: AnalyseConfig{
			Strictness:        getString(v, "ANALYSE_STRICTNESS", "strict"),
			WeightDocuments:   getFloat(v, "ANALYSE_WEIGHT_DOCUMENTS", 0.35),
			WeightConsistency: getFloat(v, "ANALYSE_WEIGHT_CONSISTENCY", 0.25),
			WeightRedFlags:    getFloat(v, "ANALYSE_WEIGHT_REDFLAGS", 0.40),
			CallTimeout:       time.Duration(getInt(v, "ANALYSE_CALL_TIMEOUT_SECONDS", 8)) * time.Second,
			OverallTimeout:    time.Duration(getInt(v, "ANALYSE_OVERALL_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Sirene: SireneConfig{
			BaseURL: getString(v, "SIRENE_BASE_URL", ""),
			Token:   getString(v, "SIRENE_TOKEN", ""),
		},
		BAN: BANConfig{
			BaseURL: getString(v, "BAN_BASE_URL", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			f, err := strconv.ParseFloat(v.GetString(key), 64)
			if err != nil {
				return def
			}
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}
