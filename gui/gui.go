// Package gui is the desktop window: four actions wired to a session.Controller.
package gui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"ocr-translate/clipboard"
	"ocr-translate/langs"
	"ocr-translate/session"
)

const title = "Image OCR & Translate"

// Notifier shows controller notifications as dialogs once a window is attached.
type Notifier struct {
	window fyne.Window
}

func (n *Notifier) Attach(w fyne.Window) { n.window = w }

func (n *Notifier) Info(msg string) {
	log.Printf("GUI: %s", msg)
	if n.window != nil {
		dialog.ShowInformation("Done", msg, n.window)
	}
}

func (n *Notifier) Warn(msg string) {
	log.Printf("GUI warning: %s", msg)
	if n.window != nil {
		dialog.ShowInformation("Warning", msg, n.window)
	}
}

type App struct {
	window     fyne.Window
	controller *session.Controller

	selectBtn    *widget.Button
	recognizeBtn *widget.Button
	translateBtn *widget.Button
	saveBtn      *widget.Button
	copyBtn      *widget.Button
	langSelect   *widget.Select
	output       *widget.Entry
	status       *widget.Label
}

// New builds the main window. defaultLang is a catalog code preselected in the
// language selector; notifier, if non-nil, is attached to the window.
func New(fa fyne.App, c *session.Controller, defaultLang string, notifier *Notifier) *App {
	a := &App{controller: c}
	a.window = fa.NewWindow(title)
	a.window.Resize(fyne.NewSize(600, 500))
	if notifier != nil {
		notifier.Attach(a.window)
	}

	a.selectBtn = widget.NewButton("Select image (PNG/JPG)", a.chooseImage)
	a.recognizeBtn = widget.NewButton("Recognize text", a.recognize)
	a.saveBtn = widget.NewButton("Save text to file", a.chooseSavePath)
	a.copyBtn = widget.NewButton("Copy", a.copyText)
	a.translateBtn = widget.NewButton("Translate", a.translate)

	a.langSelect = widget.NewSelect(langs.Labels(), nil)
	a.langSelect.PlaceHolder = "Target language"
	if l, ok := langs.ByCode(defaultLang); ok {
		a.langSelect.SetSelected(l.Label())
	}

	a.output = widget.NewMultiLineEntry()
	a.output.Wrapping = fyne.TextWrapWord
	a.output.SetMinRowsVisible(10)
	a.output.Disable()

	a.status = widget.NewLabel("")

	translateRow := container.NewBorder(nil, nil, widget.NewLabel("Translate to:"), a.translateBtn, a.langSelect)
	top := container.NewVBox(a.selectBtn, a.recognizeBtn, widget.NewLabel("Recognized / translated text:"))
	bottom := container.NewVBox(container.NewGridWithColumns(2, a.saveBtn, a.copyBtn), translateRow, a.status)
	a.window.SetContent(container.NewBorder(top, bottom, nil, nil, a.output))

	a.refresh()
	return a
}

// Run shows the window and blocks until it is closed.
func (a *App) Run() {
	a.window.ShowAndRun()
}

// refresh re-evaluates button enablement from the session.
func (a *App) refresh() {
	p := a.controller.Permissions()
	setEnabled(a.selectBtn, p.SelectImage)
	setEnabled(a.recognizeBtn, p.Recognize)
	setEnabled(a.translateBtn, p.Translate)
	setEnabled(a.saveBtn, p.Save)
	setEnabled(a.copyBtn, p.Save)

	s := a.controller.Session()
	if s.ImagePath != "" {
		a.status.SetText(fmt.Sprintf("%s | %s", s.Stage(), s.ImagePath))
	} else {
		a.status.SetText(s.Stage().String())
	}
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (a *App) showText(text string) {
	a.output.SetText(text)
}

func (a *App) showError(err error) {
	log.Printf("GUI error: %v", err)
	dialog.ShowError(err, a.window)
}

func (a *App) chooseImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if reader == nil {
			a.status.SetText("No file selected")
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		a.selectImage(path)
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter(session.SupportedExtensions))
	fd.Show()
}

func (a *App) selectImage(path string) {
	defer a.refresh()
	if err := a.controller.SelectImage(path); err != nil {
		a.showError(err)
	}
}

func (a *App) recognize() {
	defer a.refresh()
	text, err := a.controller.Recognize(context.Background())
	if err != nil {
		a.showError(err)
		return
	}
	a.showText(text)
}

func (a *App) translate() {
	defer a.refresh()
	text, err := a.controller.Translate(context.Background(), a.langSelect.Selected)
	if err != nil {
		a.showError(err)
		return
	}
	a.showText(text)
}

func (a *App) chooseSavePath() {
	_, name := a.controller.CurrentText()
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			a.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		a.save(path)
	}, a.window)
	fd.SetFileName(name)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	fd.Show()
}

func (a *App) save(path string) {
	defer a.refresh()
	if _, err := a.controller.Save(path); err != nil {
		a.showError(err)
	}
}

func (a *App) copyText() {
	text, _ := a.controller.CurrentText()
	if err := clipboard.Write(text); err != nil {
		a.showError(err)
		return
	}
	a.status.SetText("Copied to clipboard")
}
