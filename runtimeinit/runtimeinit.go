package runtimeinit

import (
	"fmt"
	"log"

	"ocr-translate/config"
	"ocr-translate/logutil"
	"ocr-translate/ocr"
	"ocr-translate/session"
	"ocr-translate/translate"
	"ocr-translate/youdao"
)

type Options struct {
	LoadOptions  config.LoadOptions
	SetupLogging func(bool)
	Notifier     session.Notifier
}

// Runtime is everything a front end needs to drive a session.
type Runtime struct {
	Config     *config.Config
	Controller *session.Controller
}

// Bootstrap loads configuration, sets up logging and wires the API clients
// into a new session controller.
func Bootstrap(opts Options) (*Runtime, error) {
	cfg, err := config.LoadWithOptions(opts.LoadOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.SetupLogging != nil {
		opts.SetupLogging(cfg.EnableFileLogging)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w. Checked secret file %s and the environment", err, cfg.SecretPath)
	}

	api := youdao.NewClient(cfg.Credentials(), youdao.WithTimeout(cfg.RequestTimeout))

	controller, err := session.NewController(session.Options{
		Recognizer: ocr.New(api, cfg.OCRURL),
		Translator: translate.New(api, cfg.TranslateURL),
		Notifier:   opts.Notifier,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Initialized: app key %s, OCR %s, translate %s, timeout %v, default language %s",
		logutil.RedactKey(cfg.AppKey), cfg.OCRURL, cfg.TranslateURL, cfg.RequestTimeout, cfg.TargetLang)

	return &Runtime{Config: cfg, Controller: controller}, nil
}
