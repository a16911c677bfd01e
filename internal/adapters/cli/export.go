package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

type exportOptions struct {
	out         string
	explanation bool
	theme       string
	scale       float64
	all         bool
	archive     string
	workers     int
}

func newExportCmd(deps Deps, root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [<no>]",
		Short: "Render share cards as PNG",
		Long: `Export renders one point as a PNG share card. With --all every point that
has text in the language is rendered, into the --out directory or into a
single zip file with --archive.`,
		Example: `  alaqidah export 12 --theme dark
  alaqidah export 12 --explanation --out card.png
  alaqidah export --all --locale id --archive cards.zip`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, err := root.resolveLocale(deps.Prefs)
			if err != nil {
				return err
			}

			theme, err := opts.resolveTheme(deps.Prefs)
			if err != nil {
				return err
			}

			if opts.all {
				return runExportAll(cmd, deps, root, opts, locale, theme)
			}

			no, err := parsePointNumber(args[0])
			if err != nil {
				return err
			}

			return runExportOne(cmd, deps, root, opts, app.ShareRequest{
				Locale:             locale,
				No:                 no,
				IncludeExplanation: opts.explanation,
				Theme:              theme,
				Scale:              opts.scale,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "", "output file, or directory with --all (default: current directory)")
	flags.BoolVarP(&opts.explanation, "explanation", "e", false, "include the explanation on the card")
	flags.StringVar(&opts.theme, "theme", "", "light or dark (default: stored preference)")
	flags.Float64Var(&opts.scale, "scale", sharecard.ExportScale, "device pixel ratio")
	flags.BoolVar(&opts.all, "all", false, "export every point")
	flags.StringVar(&opts.archive, "archive", "", "with --all, write a zip file instead of a directory")
	flags.IntVar(&opts.workers, "workers", runtime.NumCPU(), "with --all, cards rendered in parallel")

	return cmd
}

func (o *exportOptions) resolveTheme(prefs *app.Preferences) (domain.Theme, error) {
	if o.theme == "" {
		return prefs.Theme(), nil
	}

	t := domain.Theme(o.theme)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown theme %q: must be light or dark", o.theme)
	}

	return t, nil
}

func runExportOne(cmd *cobra.Command, deps Deps, root *rootOptions, opts *exportOptions, req app.ShareRequest) error {
	img, err := deps.Share.Export(cmd.Context(), req)
	if err != nil {
		return err
	}

	path := opts.out
	switch {
	case path == "":
		path = img.Filename
	case isDir(path):
		path = filepath.Join(path, img.Filename)
	}

	if err := os.WriteFile(path, img.PNG, 0o644); err != nil {
		return fmt.Errorf("writing card: %w", err)
	}

	root.printer(cmd).done("wrote %s (%dx%d)", path, img.Width, img.Height)

	return nil
}

func runExportAll(cmd *cobra.Command, deps Deps, root *rootOptions, opts *exportOptions, locale string, theme domain.Theme) error {
	ctx := cmd.Context()

	quotes := deps.Quotes.Search(ctx, content.Query{Locale: locale}).Quotes
	total := len(quotes)
	if total == 0 {
		return fmt.Errorf("no points with text in %q", locale)
	}

	sink, err := newCardSink(opts)
	if err != nil {
		return err
	}

	names := planFileNames(quotes)
	bar := newProgressBar(cmd.ErrOrStderr(), total, "Rendering cards")

	n, exportErr := deps.Share.ExportAll(ctx, app.ExportAllRequest{
		Locale:             locale,
		IncludeExplanation: opts.explanation,
		Theme:              theme,
		Scale:              opts.scale,
		Workers:            opts.workers,
	}, func(ctx context.Context, img *sharecard.Image) error {
		name, ok := names[img.No]
		if !ok {
			name = img.Filename
		}
		if err := sink.Write(name, img); err != nil {
			return err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})

	if err := errors.Join(exportErr, sink.Close()); err != nil {
		return err
	}

	root.printer(cmd).done("exported %d cards to %s", n, sink.Location())

	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// cardSink stores exported cards under the given file name. Write is called
// concurrently.
type cardSink interface {
	Write(name string, img *sharecard.Image) error
	Close() error
	Location() string
}

func newCardSink(opts *exportOptions) (cardSink, error) {
	if opts.archive != "" {
		return newArchiveSink(opts.archive)
	}

	dir := opts.out
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &dirSink{dir: dir}, nil
}

type dirSink struct {
	dir string
}

func (s *dirSink) Write(name string, img *sharecard.Image) error {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, img.PNG, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func (s *dirSink) Close() error     { return nil }
func (s *dirSink) Location() string { return s.dir }

// planFileNames assigns every point its export file name in point order, so
// the name a card gets does not depend on which worker finishes first.
func planFileNames(quotes []domain.QuoteDetail) map[int]string {
	names := newNameSet()
	out := make(map[int]string, len(quotes))
	for i := range quotes {
		out[quotes[i].No] = names.unique(sharecard.Filename(&quotes[i]))
	}

	return out
}

// nameSet hands out distinct file names. A taken name gets the first free
// -2, -3, ... suffix, and suffixed names count as taken too.
type nameSet struct {
	seen map[string]bool
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[string]bool)}
}

func (s *nameSet) unique(name string) string {
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]

	candidate := name
	for n := 2; s.seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	s.seen[candidate] = true

	return candidate
}
