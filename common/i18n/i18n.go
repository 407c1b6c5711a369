package i18n

import (
	"embed"
	"maps"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/asterix-bot/storage-bot/common/i18n/i18nk"
)

//go:embed locale/*
var localesFS embed.FS

const DefaultLang = "en"

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

func Init(lang string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	files, err := localesFS.ReadDir("locale")
	if err != nil {
		panic("failed to read locale directory: " + err.Error())
	}
	for _, file := range files {
		if _, err := b.LoadMessageFileFS(localesFS, "locale/"+file.Name()); err != nil {
			panic("failed to load message file: " + err.Error())
		}
	}
	if lang == "" {
		lang = DefaultLang
	}
	mu.Lock()
	defer mu.Unlock()
	bundle = b
	localizer = i18n.NewLocalizer(b, lang, DefaultLang)
}

// T renders key in the configured language, falling back to English and then to the key itself.
func T(key i18nk.Key, templateData ...map[string]any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init(DefaultLang)
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}
	data := make(map[string]any)
	for _, d := range templateData {
		maps.Copy(data, d)
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    string(key),
		TemplateData: data,
	})
	if err != nil {
		return string(key)
	}
	return msg
}
