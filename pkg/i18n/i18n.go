package i18n

import (
	"embed"
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

var embeddedFiles = []string{
	"locales/active.en.json",
	"locales/active.id.json",
}

type Translator struct {
	bundle *goi18n.Bundle
}

// New builds a translator with the embedded English and Indonesian messages.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, f := range embeddedFiles {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, errors.Wrapf(err, "load %s", f)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// Load adds an extra message file from disk, e.g. an operator override.
func (t *Translator) Load(path string) error {
	_, err := t.bundle.LoadMessageFile(path)
	return err
}

// T resolves messageID for the given Accept-Language values, falling back
// to English and finally to the id itself.
func (t *Translator) T(messageID string, langs ...string) string {
	if t == nil {
		return messageID
	}
	localizer := goi18n.NewLocalizer(t.bundle, langs...)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}
