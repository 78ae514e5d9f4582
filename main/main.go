package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2/app"

	"ocr-translate/config"
	"ocr-translate/gui"
	"ocr-translate/logutil"
	"ocr-translate/runtimeinit"
)

func main() {
	secretPath := flag.String("secret-path", "", "Path to the app secret file (highest precedence)")
	targetLang := flag.String("lang", "", "Language preselected for translation (code or name)")
	flag.Parse()

	notifier := &gui.Notifier{}
	rt, err := runtimeinit.Bootstrap(runtimeinit.Options{
		LoadOptions: config.LoadOptions{
			SecretPathOverride: *secretPath,
			TargetLangOverride: *targetLang,
		},
		SetupLogging: logutil.Setup,
		Notifier:     notifier,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fa := app.NewWithID("io.github.ocr-translate")
	w := gui.New(fa, rt.Controller, rt.Config.TargetLang, notifier)
	log.Printf("Image OCR & Translate started")
	w.Run()
}
