package locale

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFS = fstest.MapFS{
	"translation/translate.ru_RU.toml": {Data: []byte(`
"hello" = "Привет, {{ .name }}"
"only-ru" = "Только по-русски"
`)},
	"translation/translate.en_US.toml": {Data: []byte(`
"hello" = "Hello, {{ .name }}"
`)},
}

func TestI18nSelectsLanguageWithFallback(t *testing.T) {
	require.NoError(t, InitLocalizer(testFS, "en-US"))

	assert.Equal(t, "Hello, Ivan", I18n("hello", "name==Ivan"))
	assert.Equal(t, "Только по-русски", I18n("only-ru"))
	assert.Equal(t, "missing.key", I18n("missing.key"))

	require.NoError(t, InitLocalizer(testFS, "ru-RU"))
	assert.Equal(t, "Привет, Иван", I18n("hello", "name==Иван"))
}

func TestCreateTemplateDataIgnoresMalformedPairs(t *testing.T) {
	data := createTemplateData([]string{"a==1", "broken", "b==x==y"})
	assert.Equal(t, map[string]any{"a": "1", "b": "x==y"}, data)
}
