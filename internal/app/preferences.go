package app

import (
	"strconv"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/ports"
)

// Preference keys shared by every store.
const (
	PrefKeyLang  = "aqidah-lang"
	PrefKeyTheme = "aqidah-theme"
)

// Preferences reads and writes the user's language and theme through a
// best-effort store. Stored values that are no longer valid read back as the
// defaults.
type Preferences struct {
	store ports.PreferenceStore
}

// NewPreferences wraps store.
func NewPreferences(store ports.PreferenceStore) *Preferences {
	return &Preferences{store: store}
}

// Snapshot is the resolved preference state.
type Snapshot struct {
	Lang  string       `json:"lang"`
	Theme domain.Theme `json:"theme"`
}

// Lang returns the stored language or the default locale.
func (p *Preferences) Lang() string {
	v, ok := p.store.Get(PrefKeyLang)
	if !ok {
		return domain.DefaultLocale
	}

	return i18n.LangOrDefault(v)
}

// SetLang stores a supported language code.
func (p *Preferences) SetLang(code string) error {
	lang, ok := i18n.ParseLang(code)
	if !ok {
		return domain.NewValidationError("lang", "unsupported language "+strconv.Quote(code))
	}

	p.store.Set(PrefKeyLang, lang)

	return nil
}

// Theme returns the stored theme or ThemeLight.
func (p *Preferences) Theme() domain.Theme {
	v, ok := p.store.Get(PrefKeyTheme)
	if !ok {
		return domain.ThemeLight
	}

	t := domain.Theme(v)
	if !t.IsValid() {
		return domain.ThemeLight
	}

	return t
}

// SetTheme stores theme.
func (p *Preferences) SetTheme(theme string) error {
	t := domain.Theme(theme)
	if !t.IsValid() {
		return domain.NewValidationError("theme", "must be light or dark")
	}

	p.store.Set(PrefKeyTheme, string(t))

	return nil
}

// ToggleTheme flips and stores the theme, returning the new value.
func (p *Preferences) ToggleTheme() domain.Theme {
	next := p.Theme().Toggle()
	p.store.Set(PrefKeyTheme, string(next))

	return next
}

// Reset removes both preferences.
func (p *Preferences) Reset() {
	p.store.Remove(PrefKeyLang)
	p.store.Remove(PrefKeyTheme)
}

// Snapshot returns the resolved language and theme.
func (p *Preferences) Snapshot() Snapshot {
	return Snapshot{Lang: p.Lang(), Theme: p.Theme()}
}
