// Package locale loads the TOML translation files and renders localized strings
// for templates and flash messages.
package locale

import (
	"io/fs"
	"strings"

	"github.com/officeportal/portal/logger"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var (
	i18nBundle   *i18n.Bundle
	LocalizerWeb *i18n.Localizer
)

// InitLocalizer parses every file under translation/ in i18nFS and selects lang,
// falling back to Russian for missing messages.
func InitLocalizer(i18nFS fs.FS, lang string) error {
	i18nBundle = i18n.NewBundle(language.MustParse("ru-RU"))
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := parseTranslationFiles(i18nFS, i18nBundle); err != nil {
		return err
	}

	LocalizerWeb = i18n.NewLocalizer(i18nBundle, lang, "ru-RU")
	return nil
}

func createTemplateData(params []string, seperator ...string) map[string]any {
	var sep string = "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}

	return templateData
}

// I18n renders the message key. Params are "name==value" pairs.
// Unknown keys render as the key itself.
func I18n(key string, params ...string) string {
	if LocalizerWeb == nil {
		return key
	}

	msg, err := LocalizerWeb.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		logger.Warningf("Failed to localize message %q: %v", key, err)
		return key
	}

	return msg
}

func parseTranslationFiles(i18nFS fs.FS, i18nBundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			data, err := fs.ReadFile(i18nFS, path)
			if err != nil {
				return err
			}

			_, err = i18nBundle.ParseMessageFileBytes(data, path)
			return err
		})
}
