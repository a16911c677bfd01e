package sharecard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts holds one parsed font source per card text style, plus the fallback
// sources consulted for runes the style's own font lacks.
type Fonts struct {
	sources   map[Font]*text.FontSource
	fallbacks []*text.FontSource
}

// fontFiles maps each style to the file looked up in a font directory and to
// the bundled Go font used when that file is absent.
var fontFiles = map[Font]struct {
	name     string
	fallback []byte
}{
	FontTitle:       {"title.ttf", gomedium.TTF},
	FontLabel:       {"label.ttf", gobold.TTF},
	FontQuote:       {"quote.ttf", goitalic.TTF},
	FontExplanation: {"explanation.ttf", goregular.TTF},
	FontQuoteMark:   {"title.ttf", gomedium.TTF},
}

// LoadFonts parses the card fonts. When dir is non-empty, files found there
// replace the bundled Go fonts, and every other .ttf or .otf file in dir
// becomes a fallback font, tried in file name order. The Go fonts cover
// Latin, Greek and Cyrillic only, so Arabic or CJK content needs a fallback
// such as Noto Sans Arabic in dir.
func LoadFonts(dir string) (*Fonts, error) {
	f := &Fonts{sources: make(map[Font]*text.FontSource, len(fontFiles))}
	parsed := make(map[string]*text.FontSource)

	for style, spec := range fontFiles {
		data := spec.fallback
		key := "builtin:" + spec.name

		if dir != "" {
			custom, err := os.ReadFile(filepath.Join(dir, spec.name))
			switch {
			case err == nil:
				data = custom
				key = filepath.Join(dir, spec.name)
			case !errors.Is(err, fs.ErrNotExist):
				return nil, fmt.Errorf("reading font %s: %w", spec.name, err)
			}
		}

		if src, ok := parsed[key]; ok {
			f.sources[style] = src
			continue
		}

		src, err := text.NewFontSource(data)
		if err != nil {
			return nil, fmt.Errorf("parsing font %s: %w", spec.name, err)
		}
		parsed[key] = src
		f.sources[style] = src
	}

	if dir == "" {
		return f, nil
	}

	fallbacks, err := loadFallbacks(dir)
	if err != nil {
		return nil, err
	}
	f.fallbacks = fallbacks

	return f, nil
}

func loadFallbacks(dir string) ([]*text.FontSource, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading font dir: %w", err)
	}

	styleFiles := make(map[string]bool, len(fontFiles))
	for _, spec := range fontFiles {
		styleFiles[spec.name] = true
	}

	// ReadDir sorts by name.
	var out []*text.FontSource
	for _, e := range entries {
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if e.IsDir() || styleFiles[name] || (ext != ".ttf" && ext != ".otf") {
			continue
		}

		src, err := text.NewFontSourceFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("parsing fallback font %s: %w", name, err)
		}
		out = append(out, src)
	}

	return out, nil
}

// Fallbacks returns the number of fallback fonts loaded.
func (f *Fonts) Fallbacks() int {
	return len(f.fallbacks)
}

// Face returns the face for style at size device pixels. With fallback fonts
// loaded, each rune is drawn with the first font in the chain that has it.
func (f *Fonts) Face(style Font, size float64) text.Face {
	primary := f.sources[style].Face(size)
	if len(f.fallbacks) == 0 {
		return primary
	}

	faces := make([]text.Face, 0, len(f.fallbacks)+1)
	faces = append(faces, primary)
	for _, src := range f.fallbacks {
		faces = append(faces, src.Face(size))
	}

	multi, err := text.NewMultiFace(faces...)
	if err != nil {
		return primary
	}

	return multi
}

// Missing returns the distinct runes of s, in order of first appearance,
// that no font in the chain of style can draw. Spaces and control runes are
// ignored.
func (f *Fonts) Missing(style Font, s string) []rune {
	face := f.Face(style, style.Size())

	var missing []rune
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || slices.Contains(missing, r) {
			continue
		}
		if !face.HasGlyph(r) {
			missing = append(missing, r)
		}
	}

	return missing
}
