// Package session holds the application state and the transitions the user
// actions drive. Reduce is pure; Controller runs the effects it asks for.
package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"ocr-translate/apperr"
	"ocr-translate/langs"
)

const (
	ExtractedFileName  = "extracted_text.txt"
	TranslatedFileName = "translated_text.txt"
)

// SupportedExtensions lists the image types accepted by SelectImage.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg"}

type Stage int

const (
	StageInitial Stage = iota
	StageImageSelected
	StageTextExtracted
	StageTranslated
)

func (s Stage) String() string {
	switch s {
	case StageImageSelected:
		return "ImageSelected"
	case StageTextExtracted:
		return "TextExtracted"
	case StageTranslated:
		return "Translated"
	default:
		return "Initial"
	}
}

// Session is the state held for the lifetime of the application.
// Extracted and Translated mark whether the matching text field is set,
// since an empty recognition result is still a result.
type Session struct {
	ImagePath      string
	ExtractedText  string
	Extracted      bool
	TranslatedText string
	Translated     bool
	TargetLang     string
}

func (s Session) Stage() Stage {
	switch {
	case s.Translated:
		return StageTranslated
	case s.Extracted:
		return StageTextExtracted
	case s.ImagePath != "":
		return StageImageSelected
	default:
		return StageInitial
	}
}

// Permissions says which user actions are currently enabled.
type Permissions struct {
	SelectImage bool
	Recognize   bool
	Translate   bool
	Save        bool
}

// Permissions is stage-based: an empty recognition still enables Translate and
// Save, and Reduce rejects them when there is no text.
func (s Session) Permissions() Permissions {
	return Permissions{
		SelectImage: true,
		Recognize:   s.ImagePath != "",
		Translate:   s.Extracted,
		Save:        s.Extracted,
	}
}

// CurrentText returns the most recent text artifact and the file name it is
// saved under by default. An empty translation falls back to the extracted text.
func (s Session) CurrentText() (string, string) {
	if s.Translated && s.TranslatedText != "" {
		return s.TranslatedText, TranslatedFileName
	}
	if s.Extracted {
		return s.ExtractedText, ExtractedFileName
	}
	return "", ""
}

// Action is a user request or the result of an effect.
type Action interface{ action() }

type (
	SelectImage struct{ Path string }
	Recognize   struct{}
	Recognized  struct{ Text string }
	// Translate takes a catalog label or a language code.
	Translate  struct{ Language string }
	Translated struct{ Text string }
	Save       struct{ Path string }
)

func (SelectImage) action() {}
func (Recognize) action()   {}
func (Recognized) action()  {}
func (Translate) action()   {}
func (Translated) action()  {}
func (Save) action()        {}

// Effect is work Reduce asks the caller to perform. A nil Effect means none.
type Effect interface{ effect() }

type (
	RecognizeEffect struct{ ImagePath string }
	TranslateEffect struct {
		Text string
		To   string
	}
	SaveEffect struct {
		Path string
		Text string
	}
)

func (RecognizeEffect) effect() {}
func (TranslateEffect) effect() {}
func (SaveEffect) effect()      {}

// Reduce applies a to s. On error the returned Session is s unchanged.
func Reduce(s Session, a Action) (Session, Effect, error) {
	switch a := a.(type) {
	case SelectImage:
		if strings.TrimSpace(a.Path) == "" {
			return s, nil, apperr.Precondition("select image", "no file selected")
		}
		ext := strings.ToLower(filepath.Ext(a.Path))
		if !supported(ext) {
			return s, nil, apperr.UnsupportedFormat("select image", ext)
		}
		next := s
		next.ImagePath = a.Path
		return next, nil, nil

	case Recognize:
		if s.ImagePath == "" {
			return s, nil, apperr.Precondition("recognize", "select an image first")
		}
		return s, RecognizeEffect{ImagePath: s.ImagePath}, nil

	case Recognized:
		if s.ImagePath == "" {
			return s, nil, apperr.Precondition("recognize", "select an image first")
		}
		next := s
		next.ExtractedText = a.Text
		next.Extracted = true
		next.TranslatedText = ""
		next.Translated = false
		return next, nil, nil

	case Translate:
		if !s.Extracted {
			return s, nil, apperr.Precondition("translate", "recognize text first")
		}
		if strings.TrimSpace(a.Language) == "" {
			return s, nil, apperr.Precondition("translate", "select a target language")
		}
		code, ok := langs.Resolve(a.Language)
		if !ok {
			return s, nil, apperr.Precondition("translate", fmt.Sprintf("unknown target language %q", a.Language))
		}
		if strings.TrimSpace(s.ExtractedText) == "" {
			return s, nil, apperr.Precondition("translate", "no text to translate")
		}
		next := s
		next.TargetLang = code
		return next, TranslateEffect{Text: s.ExtractedText, To: code}, nil

	case Translated:
		if !s.Extracted {
			return s, nil, apperr.Precondition("translate", "recognize text first")
		}
		next := s
		next.TranslatedText = a.Text
		next.Translated = true
		return next, nil, nil

	case Save:
		text, name := s.CurrentText()
		if text == "" {
			return s, nil, apperr.Precondition("save", "no text to save")
		}
		path := a.Path
		if path == "" {
			path = name
		}
		return s, SaveEffect{Path: path, Text: text}, nil

	default:
		return s, nil, apperr.Precondition("dispatch", fmt.Sprintf("unknown action %T", a))
	}
}

func supported(ext string) bool {
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
