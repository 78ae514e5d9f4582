package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ocr-translate/langs"
	"ocr-translate/youdao"
)

const (
	DefaultSecretPath  = "/run/secrets/youdao/app_secret"
	SecretPathEnvVar   = "YOUDAO_APP_SECRET_FILE"
	EnvFileEnvVar      = "OCR_TRANSLATE_ENV"
	DefaultTargetLang  = "en"
	DefaultTimeoutSecs = 45
)

type LoadOptions struct {
	SecretPathOverride string
	TargetLangOverride string
}

type Config struct {
	AppKey            string
	AppSecret         string
	SecretPath        string
	OCRURL            string
	TranslateURL      string
	RequestTimeout    time.Duration
	TargetLang        string
	EnableFileLogging bool
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Sources in priority order:
	// 1) .env in the executable directory
	// 2) otherwise the file named by OCR_TRANSLATE_ENV
	envPath := resolveEnvPath()
	dotenvValues := readDotenvValues(envPath)
	if envPath != "" {
		_ = godotenv.Load(envPath)
	}

	timeoutSecs := DefaultTimeoutSecs
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeoutSecs = n
		}
	}

	secretPath := resolveSecretPath(opts, dotenvValues)

	cfg := &Config{
		AppKey:            strings.TrimSpace(os.Getenv("YOUDAO_APP_KEY")),
		AppSecret:         resolveSecret(secretPath),
		SecretPath:        secretPath,
		OCRURL:            getEnvWithDefault("YOUDAO_OCR_URL", youdao.DefaultOCRURL),
		TranslateURL:      getEnvWithDefault("YOUDAO_TRANSLATE_URL", youdao.DefaultTranslateURL),
		RequestTimeout:    time.Duration(timeoutSecs) * time.Second,
		TargetLang:        resolveTargetLang(opts),
		EnableFileLogging: strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
	}

	return cfg, nil
}

// Validate reports missing credentials.
func (c *Config) Validate() error {
	var missing []string
	if c.AppKey == "" {
		missing = append(missing, "YOUDAO_APP_KEY")
	}
	if c.AppSecret == "" {
		missing = append(missing, "YOUDAO_APP_SECRET (or "+SecretPathEnvVar+")")
	}
	if len(missing) > 0 {
		return errors.New("missing configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) Credentials() youdao.Credentials {
	return youdao.Credentials{AppKey: c.AppKey, AppSecret: c.AppSecret}
}

func resolveEnvPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}

	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func readDotenvValues(envPath string) map[string]string {
	if envPath == "" {
		return map[string]string{}
	}

	values, err := godotenv.Read(envPath)
	if err != nil {
		return map[string]string{}
	}

	return values
}

func resolveSecretPath(opts LoadOptions, dotenvValues map[string]string) string {
	keyPath := DefaultSecretPath

	if envPath := strings.TrimSpace(os.Getenv(SecretPathEnvVar)); envPath != "" {
		keyPath = envPath
	}

	if dotenvPath := strings.TrimSpace(dotenvValues[SecretPathEnvVar]); dotenvPath != "" {
		keyPath = dotenvPath
	}

	if overridePath := strings.TrimSpace(opts.SecretPathOverride); overridePath != "" {
		keyPath = overridePath
	}

	return keyPath
}

// resolveSecret prefers the secret file and falls back to YOUDAO_APP_SECRET.
func resolveSecret(keyPath string) string {
	if data, err := os.ReadFile(keyPath); err == nil {
		if fileKey := strings.TrimSpace(string(data)); fileKey != "" {
			return fileKey
		}
	}

	return strings.TrimSpace(os.Getenv("YOUDAO_APP_SECRET"))
}

func resolveTargetLang(opts LoadOptions) string {
	value := os.Getenv("DEFAULT_TARGET_LANG")
	if override := strings.TrimSpace(opts.TargetLangOverride); override != "" {
		value = override
	}
	if code, ok := langs.Resolve(value); ok {
		return code
	}
	return DefaultTargetLang
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
