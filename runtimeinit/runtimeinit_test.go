package runtimeinit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ocr-translate/config"
)

func setEnv(t *testing.T, ocrURL, translateURL string) {
	t.Helper()
	t.Setenv("YOUDAO_APP_KEY", "0132dd473eb9f867")
	t.Setenv("YOUDAO_APP_SECRET", "test_secret")
	t.Setenv(config.SecretPathEnvVar, filepath.Join(t.TempDir(), "absent"))
	t.Setenv("YOUDAO_OCR_URL", ocrURL)
	t.Setenv("YOUDAO_TRANSLATE_URL", translateURL)
	t.Setenv("ENABLE_FILE_LOGGING", "")
}

func TestBootstrapMissingCredentials(t *testing.T) {
	setEnv(t, "", "")
	t.Setenv("YOUDAO_APP_KEY", "")

	_, err := Bootstrap(Options{})
	if err == nil || !strings.Contains(err.Error(), "YOUDAO_APP_KEY") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestBootstrapWiresClients(t *testing.T) {
	ocrSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errorCode":"0","Result":{"regions":[{"lines":[{"text":"Hello"}]}]}}`))
	}))
	defer ocrSrv.Close()
	trSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errorCode":"0","translation":["Hallo"]}`))
	}))
	defer trSrv.Close()
	setEnv(t, ocrSrv.URL, trSrv.URL)

	loggingEnabled := true
	rt, err := Bootstrap(Options{SetupLogging: func(enabled bool) { loggingEnabled = enabled }})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if loggingEnabled {
		t.Error("SetupLogging should receive the configured value")
	}

	img := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(img, []byte("png"), 0600); err != nil {
		t.Fatal(err)
	}
	c := rt.Controller
	if err := c.SelectImage(img); err != nil {
		t.Fatal(err)
	}
	if text, err := c.Recognize(context.Background()); err != nil || text != "Hello" {
		t.Fatalf("Recognize() = (%q, %v)", text, err)
	}
	if text, err := c.Translate(context.Background(), "de"); err != nil || text != "Hallo" {
		t.Fatalf("Translate() = (%q, %v)", text, err)
	}
}
