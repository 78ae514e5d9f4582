package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ocr-translate/youdao"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"YOUDAO_APP_KEY", "YOUDAO_APP_SECRET", EnvFileEnvVar,
		"YOUDAO_OCR_URL", "YOUDAO_TRANSLATE_URL", "REQUEST_TIMEOUT_SEC",
		"DEFAULT_TARGET_LANG", "ENABLE_FILE_LOGGING",
	} {
		t.Setenv(k, "")
	}
	// Point the secret file somewhere empty so a real secret never leaks in.
	t.Setenv(SecretPathEnvVar, filepath.Join(t.TempDir(), "absent"))
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUDAO_APP_KEY", "test_app_key")
	t.Setenv("YOUDAO_APP_SECRET", "test_secret")
	t.Setenv("REQUEST_TIMEOUT_SEC", "7")
	t.Setenv("DEFAULT_TARGET_LANG", "ja")
	t.Setenv("ENABLE_FILE_LOGGING", "true")
	t.Setenv("YOUDAO_OCR_URL", "http://localhost/ocr")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.AppKey != "test_app_key" {
		t.Errorf("Expected AppKey to be 'test_app_key', got '%s'", cfg.AppKey)
	}
	if cfg.AppSecret != "test_secret" {
		t.Errorf("Expected AppSecret to be 'test_secret', got '%s'", cfg.AppSecret)
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Errorf("Expected RequestTimeout 7s, got %v", cfg.RequestTimeout)
	}
	if cfg.TargetLang != "ja" {
		t.Errorf("Expected TargetLang 'ja', got '%s'", cfg.TargetLang)
	}
	if !cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be true")
	}
	if cfg.OCRURL != "http://localhost/ocr" {
		t.Errorf("Expected OCRURL override, got '%s'", cfg.OCRURL)
	}
	if cfg.TranslateURL != youdao.DefaultTranslateURL {
		t.Errorf("Expected default TranslateURL, got '%s'", cfg.TranslateURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if got := cfg.Credentials(); got.AppKey != "test_app_key" || got.AppSecret != "test_secret" {
		t.Errorf("unexpected credentials %+v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("REQUEST_TIMEOUT_SEC", "not-a-number")
	t.Setenv("DEFAULT_TARGET_LANG", "Klingon")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RequestTimeout != DefaultTimeoutSecs*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.TargetLang != DefaultTargetLang {
		t.Errorf("TargetLang = %q", cfg.TargetLang)
	}
	if cfg.Validate() == nil {
		t.Error("expected missing credentials to fail validation")
	}
}

func TestSecretFileTakesPrecedence(t *testing.T) {
	clearEnv(t)
	secretFile := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretFile, []byte("  from_file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("YOUDAO_APP_SECRET", "from_env")

	cfg, err := LoadWithOptions(LoadOptions{SecretPathOverride: secretFile, TargetLangOverride: "German (de)"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppSecret != "from_file" {
		t.Errorf("AppSecret = %q, want from_file", cfg.AppSecret)
	}
	if cfg.SecretPath != secretFile {
		t.Errorf("SecretPath = %q", cfg.SecretPath)
	}
	if cfg.TargetLang != "de" {
		t.Errorf("TargetLang = %q, want de", cfg.TargetLang)
	}
}

func TestEnvFileFromVariable(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "app.env")
	if err := os.WriteFile(envFile, []byte("YOUDAO_APP_KEY=dotenv_key\nYOUDAO_APP_SECRET=dotenv_secret\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFileEnvVar, envFile)
	// godotenv.Load never overrides variables that are already set, even to "".
	os.Unsetenv("YOUDAO_APP_KEY")
	os.Unsetenv("YOUDAO_APP_SECRET")
	t.Cleanup(func() {
		os.Unsetenv("YOUDAO_APP_KEY")
		os.Unsetenv("YOUDAO_APP_SECRET")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppKey != "dotenv_key" || cfg.AppSecret != "dotenv_secret" {
		t.Errorf("credentials not read from %s: %+v", envFile, cfg.Credentials())
	}
}
