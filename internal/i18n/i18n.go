// Package i18n holds the supported language list, UI translation strings and
// Accept-Language negotiation.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// Translation keys used by the share card and the API.
const (
	KeySharePointLabel       = "sharePointLabel"
	KeyShareLabelQuote       = "shareLabelQuote"
	KeyShareLabelExplanation = "shareLabelExplanation"
	KeyNoResults             = "noResults"
)

// Keys lists every UI string key a translation file may carry.
var Keys = []string{
	"aboutBody", "aboutLinkText", "aboutTitle",
	"error404Desc", "error404Title", "error500Desc", "error500Title", "errorBackHome",
	"languageLabel", "madeBy", "noResults", "placeholder",
	"previewLabelCategory", "previewLabelExplanation", "previewLabelQuote", "previewModalAria",
	"searchAria",
	"shareContentPrompt", "shareLabelExplanation", "shareLabelQuote", "shareModalAria",
	"shareModalTitle", "sharePointLabel", "shareQuoteAndExplanation", "shareQuoteOnly",
	"shareSaveAsImage", "shareSaving",
	"sourceDesc", "sourceLabel",
}

// Language describes one supported UI language.
type Language struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Name  string `json:"name"`
	RTL   bool   `json:"rtl"`
}

var languages = []Language{
	{Code: "ar", Label: "AR", Name: "العربية", RTL: true},
	{Code: "bn", Label: "BN", Name: "বাংলা"},
	{Code: "de", Label: "DE", Name: "Deutsch"},
	{Code: "en", Label: "EN", Name: "English"},
	{Code: "es", Label: "ES", Name: "Español"},
	{Code: "fa", Label: "FA", Name: "فارسی", RTL: true},
	{Code: "fr", Label: "FR", Name: "Français"},
	{Code: "hi", Label: "HI", Name: "हिन्दी"},
	{Code: "id", Label: "ID", Name: "Bahasa Indonesia"},
	{Code: "it", Label: "IT", Name: "Italiano"},
	{Code: "ja", Label: "JA", Name: "日本語"},
	{Code: "ko", Label: "KO", Name: "한국어"},
	{Code: "ms", Label: "MS", Name: "Bahasa Melayu"},
	{Code: "pt", Label: "PT", Name: "Português"},
	{Code: "ru", Label: "RU", Name: "Русский"},
	{Code: "th", Label: "TH", Name: "ไทย"},
	{Code: "tl", Label: "TL", Name: "Tagalog"},
	{Code: "tr", Label: "TR", Name: "Türkçe"},
	{Code: "ur", Label: "UR", Name: "اردو", RTL: true},
	{Code: "vi", Label: "VI", Name: "Tiếng Việt"},
	{Code: "zh", Label: "ZH", Name: "中文"},
}

var matcher = newMatcher()

func newMatcher() language.Matcher {
	// The default locale goes first so it wins when nothing matches.
	tags := []language.Tag{language.MustParse(domain.DefaultLocale)}
	for _, l := range languages {
		if l.Code != domain.DefaultLocale {
			tags = append(tags, language.MustParse(l.Code))
		}
	}

	return language.NewMatcher(tags)
}

// Languages returns the supported languages ordered by code.
func Languages() []Language {
	return slices.Clone(languages)
}

// Lookup returns the language for code.
func Lookup(code string) (Language, bool) {
	idx := slices.IndexFunc(languages, func(l Language) bool { return l.Code == code })
	if idx < 0 {
		return Language{}, false
	}

	return languages[idx], true
}

// ParseLang returns code when it names a supported language.
func ParseLang(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := Lookup(code); ok {
		return code, true
	}

	return "", false
}

// LangOrDefault returns code if supported, otherwise the default locale.
func LangOrDefault(code string) string {
	if lang, ok := ParseLang(code); ok {
		return lang
	}

	return domain.DefaultLocale
}

// Match negotiates an Accept-Language header value against the supported
// languages. Unparseable or unmatched headers yield the default locale.
func Match(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return domain.DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return domain.DefaultLocale
	}

	tag, _, conf := matcher.Match(tags...)
	if conf == language.No {
		return domain.DefaultLocale
	}

	base, _ := tag.Base()

	return LangOrDefault(base.String())
}

//go:embed locales/*.json
var localesFS embed.FS

// Catalog maps locale → key → translated string.
type Catalog struct {
	strings map[string]map[string]string
}

// Load reads the embedded translation files.
func Load() (*Catalog, error) {
	return LoadFS(localesFS, "locales")
}

// LoadFS reads <dir>/<locale>.json translation files from fsys.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing translation files: %w", err)
	}

	c := &Catalog{strings: make(map[string]map[string]string, len(names))}

	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}

		c.strings[strings.TrimSuffix(path.Base(name), ".json")] = entries
	}

	if _, ok := c.strings[domain.DefaultLocale]; !ok {
		return nil, fmt.Errorf("translation file for default locale %q missing", domain.DefaultLocale)
	}

	return c, nil
}

// T returns the string for key in locale, falling back to the default
// locale and finally to the key itself.
func (c *Catalog) T(locale, key string) string {
	if s, ok := c.strings[locale][key]; ok && s != "" {
		return s
	}

	if s, ok := c.strings[domain.DefaultLocale][key]; ok {
		return s
	}

	return key
}

// Strings returns every known key for locale with fallbacks applied.
func (c *Catalog) Strings(locale string) map[string]string {
	out := make(map[string]string, len(Keys))
	for _, key := range Keys {
		out[key] = c.T(locale, key)
	}

	return out
}

// Has reports whether locale has its own translation file.
func (c *Catalog) Has(locale string) bool {
	_, ok := c.strings[locale]
	return ok
}
