package sharecard

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// slugSpace is every rune treated as whitespace: ASCII spaces, vertical tab,
// the Unicode separators (NBSP, U+3000 and friends) and the BOM.
const slugSpace = `\t\n\v\f\r \p{Z}\x{FEFF}`

var (
	slugStrip    = regexp.MustCompile(`[^\p{L}\p{N}` + slugSpace + `-]`)
	slugSpaces   = regexp.MustCompile(`[` + slugSpace + `]+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	slugFallback = "quote"
)

// Slugify turns text into a lower-case, hyphen-separated file name fragment.
// Letters and digits of any script are kept. An empty result becomes "quote".
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSuffix(s, "-")

	if s == "" {
		return slugFallback
	}

	return s
}

// Filename returns the export file name for a point.
func Filename(detail *domain.QuoteDetail) string {
	base := strings.TrimSpace(detail.Title)
	if base == "" {
		base = "title-" + strconv.Itoa(detail.No)
	}

	return "alaqidah-" + Slugify(base) + ".png"
}
