package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// LocaleOrder is the display order of the locale data sets.
var LocaleOrder = []string{
	"id", "en", "ar", "bn", "de", "es", "fa", "fr", "hi", "it", "ja",
	"ko", "ms", "pt", "ru", "th", "tl", "tr", "ur", "vi", "zh",
}

//go:embed data/*.json
var embedded embed.FS

// ParseEntries decodes one locale document: a JSON array of quote entries.
func ParseEntries(r io.Reader) ([]domain.QuoteEntry, error) {
	var entries []domain.QuoteEntry

	dec := json.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding quote entries: %w", err)
	}

	for i, e := range entries {
		if e.No < 1 {
			return nil, domain.NewValidationError(
				fmt.Sprintf("entries[%d].no", i),
				"must be a positive integer",
			)
		}
	}

	return entries, nil
}

// LoadFS reads <dir>/<locale>.json for each locale present in fsys. Locales
// are returned in LocaleOrder, followed by any other files sorted by name.
func LoadFS(fsys fs.FS, dir string) ([]domain.LocaleData, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing locale files: %w", err)
	}

	available := make(map[string]string, len(names))
	for _, name := range names {
		locale := strings.TrimSuffix(path.Base(name), ".json")
		available[locale] = name
	}

	sets := make([]domain.LocaleData, 0, len(available))

	for _, locale := range orderLocales(available) {
		entries, err := readLocaleFile(fsys, available[locale])
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", locale, err)
		}

		sets = append(sets, domain.LocaleData{Locale: locale, Entries: entries})
	}

	return sets, nil
}

// LoadEmbedded returns the locale data compiled into the binary.
func LoadEmbedded() ([]domain.LocaleData, error) {
	return LoadFS(embedded, "data")
}

// LoadDir reads locale files from a directory on disk.
func LoadDir(dir string) ([]domain.LocaleData, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %q is not a directory", dir)
	}

	return LoadFS(os.DirFS(dir), ".")
}

// Merge overlays extra data sets on top of base. A locale present in both is
// replaced by the extra set.
func Merge(base []domain.LocaleData, extra ...domain.LocaleData) []domain.LocaleData {
	out := slices.Clone(base)
	for _, e := range extra {
		idx := slices.IndexFunc(out, func(d domain.LocaleData) bool { return d.Locale == e.Locale })
		if idx >= 0 {
			out[idx] = e
			continue
		}
		out = append(out, e)
	}

	return out
}

func readLocaleFile(fsys fs.FS, name string) ([]domain.QuoteEntry, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewNotFoundError("locale file", name)
		}
		return nil, err
	}
	defer f.Close()

	return ParseEntries(f)
}

func orderLocales(available map[string]string) []string {
	ordered := make([]string, 0, len(available))
	for _, locale := range LocaleOrder {
		if _, ok := available[locale]; ok {
			ordered = append(ordered, locale)
		}
	}

	var rest []string
	for locale := range available {
		if !slices.Contains(LocaleOrder, locale) {
			rest = append(rest, locale)
		}
	}
	slices.Sort(rest)

	return append(ordered, rest...)
}
