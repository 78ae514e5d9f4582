package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ocr-translate/apperr"
	"ocr-translate/translate"
)

// Recognizer turns an image file into text.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Translator turns text into the language identified by to.
type Translator interface {
	Translate(ctx context.Context, text, to string) (translate.Result, error)
}

// Notifier receives non-fatal messages for the user.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Info(msg string) { log.Printf("INFO: %s", msg) }
func (LogNotifier) Warn(msg string) { log.Printf("WARN: %s", msg) }

type Options struct {
	Recognizer Recognizer
	Translator Translator
	Notifier   Notifier
}

// Controller owns a Session and runs the effects of each action. Actions run
// to completion on the calling goroutine; the session is only replaced once an
// action and all its effects have succeeded.
type Controller struct {
	session    Session
	recognizer Recognizer
	translator Translator
	notifier   Notifier
}

func NewController(opts Options) (*Controller, error) {
	if opts.Recognizer == nil {
		return nil, errors.New("Recognizer is required")
	}
	if opts.Translator == nil {
		return nil, errors.New("Translator is required")
	}
	n := opts.Notifier
	if n == nil {
		n = LogNotifier{}
	}
	return &Controller{recognizer: opts.Recognizer, translator: opts.Translator, notifier: n}, nil
}

// Session returns a copy of the current state.
func (c *Controller) Session() Session { return c.session }

func (c *Controller) Permissions() Permissions { return c.session.Permissions() }

// CurrentText returns the most recent text artifact and its default file name.
func (c *Controller) CurrentText() (string, string) { return c.session.CurrentText() }

// SelectImage sets the image to recognize. The file must exist and be a PNG or JPG.
func (c *Controller) SelectImage(path string) error {
	next, _, err := Reduce(c.session, SelectImage{Path: path})
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return apperr.FileIO("select image", err)
	}
	if info.IsDir() {
		return apperr.FileIO("select image", fmt.Errorf("%s is a directory", path))
	}
	c.session = next
	c.notifier.Info(fmt.Sprintf("image selected: %s", filepath.Base(path)))
	return nil
}

// Recognize runs OCR on the selected image and returns the extracted text.
func (c *Controller) Recognize(ctx context.Context) (string, error) {
	if err := c.dispatch(ctx, Recognize{}); err != nil {
		return "", err
	}
	return c.session.ExtractedText, nil
}

// Translate translates the extracted text. language is a catalog label or code.
func (c *Controller) Translate(ctx context.Context, language string) (string, error) {
	if err := c.dispatch(ctx, Translate{Language: language}); err != nil {
		return "", err
	}
	return c.session.TranslatedText, nil
}

// Save writes the most recent text to path and returns the path written.
// An empty path uses the default file name; a directory gets it appended.
func (c *Controller) Save(path string) (string, error) {
	_, name := c.session.CurrentText()
	if path != "" && name != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, name)
		}
	}
	next, eff, err := Reduce(c.session, Save{Path: path})
	if err != nil {
		return "", err
	}
	if _, err := c.run(context.Background(), eff); err != nil {
		return "", err
	}
	c.session = next
	return eff.(SaveEffect).Path, nil
}

func (c *Controller) dispatch(ctx context.Context, a Action) error {
	next, eff, err := Reduce(c.session, a)
	if err != nil {
		log.Printf("Session: %T rejected in stage %s: %v", a, c.session.Stage(), err)
		return err
	}
	for eff != nil {
		follow, err := c.run(ctx, eff)
		if err != nil {
			log.Printf("Session: %T failed in stage %s: %v", a, c.session.Stage(), err)
			return err
		}
		if follow == nil {
			break
		}
		if next, eff, err = Reduce(next, follow); err != nil {
			return err
		}
	}
	log.Printf("Session: %T moved %s -> %s", a, c.session.Stage(), next.Stage())
	c.session = next
	return nil
}

// run performs eff and returns the action that records its result, if any.
func (c *Controller) run(ctx context.Context, eff Effect) (Action, error) {
	switch e := eff.(type) {
	case RecognizeEffect:
		text, err := c.recognizer.Recognize(ctx, e.ImagePath)
		if err != nil {
			return nil, err
		}
		return Recognized{Text: text}, nil

	case TranslateEffect:
		res, err := c.translator.Translate(ctx, e.Text, e.To)
		if err != nil {
			return nil, err
		}
		if w := res.Warning(); w != "" {
			c.notifier.Warn(w)
		}
		return Translated{Text: res.Text}, nil

	case SaveEffect:
		if err := writeText(e.Path, e.Text); err != nil {
			return nil, err
		}
		c.notifier.Info(fmt.Sprintf("text saved to %s", e.Path))
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown effect %T", eff)
	}
}

func writeText(path, text string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return apperr.FileIO("save", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = apperr.FileIO("save", cerr)
		}
	}()
	if _, err := f.WriteString(text); err != nil {
		return apperr.FileIO("save", err)
	}
	return nil
}
