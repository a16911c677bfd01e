package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/mocks"
)

func TestPreferences_Defaults(t *testing.T) {
	store := mocks.NewMockPreferenceStore(t)
	store.EXPECT().Get(PrefKeyLang).Return("", false)
	store.EXPECT().Get(PrefKeyTheme).Return("", false)

	got := NewPreferences(store).Snapshot()

	assert.Equal(t, Snapshot{Lang: "en", Theme: domain.ThemeLight}, got)
}

func TestPreferences_InvalidStoredValuesFallBack(t *testing.T) {
	store := mocks.NewMockPreferenceStore(t)
	store.EXPECT().Get(PrefKeyLang).Return("xx", true)
	store.EXPECT().Get(PrefKeyTheme).Return("sepia", true)

	p := NewPreferences(store)

	assert.Equal(t, "en", p.Lang())
	assert.Equal(t, domain.ThemeLight, p.Theme())
}

func TestPreferences_SetLang(t *testing.T) {
	store := mocks.NewMockPreferenceStore(t)
	store.EXPECT().Set(PrefKeyLang, "id").Return()

	p := NewPreferences(store)

	require.NoError(t, p.SetLang(" ID "))
	assert.True(t, domain.IsValidation(p.SetLang("klingon")))
}

func TestPreferences_SetTheme(t *testing.T) {
	store := mocks.NewMockPreferenceStore(t)
	store.EXPECT().Set(PrefKeyTheme, "dark").Return()

	p := NewPreferences(store)

	require.NoError(t, p.SetTheme("dark"))
	assert.True(t, domain.IsValidation(p.SetTheme("DARK")))
}

func TestPreferences_ToggleTheme(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		found  bool
		want   domain.Theme
	}{
		{name: "unset becomes dark", found: false, want: domain.ThemeDark},
		{name: "light becomes dark", stored: "light", found: true, want: domain.ThemeDark},
		{name: "dark becomes light", stored: "dark", found: true, want: domain.ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockPreferenceStore(t)
			store.EXPECT().Get(PrefKeyTheme).Return(tt.stored, tt.found)
			store.EXPECT().Set(PrefKeyTheme, string(tt.want)).Return()

			assert.Equal(t, tt.want, NewPreferences(store).ToggleTheme())
		})
	}
}

func TestPreferences_Reset(t *testing.T) {
	store := mocks.NewMockPreferenceStore(t)
	store.EXPECT().Remove(PrefKeyLang).Return()
	store.EXPECT().Remove(PrefKeyTheme).Return()

	NewPreferences(store).Reset()
}
