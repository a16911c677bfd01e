// Package cli implements the alaqidah command line: browsing quotes, exporting
// share cards and managing local preferences.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
)

// Deps are the services the commands run against.
type Deps struct {
	Quotes *app.QuoteService
	Share  *app.ShareService
	Prefs  *app.Preferences
	// PrefsPath is shown by "prefs get".
	PrefsPath string
	Logger    *slog.Logger
}

type rootOptions struct {
	locale  string
	noColor bool
}

// NewRootCmd builds the command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "alaqidah",
		Short: "Browse the points of Al-Aqidah and export share cards.",
		Long: `alaqidah lists and searches the numbered points of the creed in every
available language and renders them as PNG share cards.

The language and card theme default to the stored preferences
(see "alaqidah prefs").`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if deps.Logger != nil {
				cmd.SetContext(logging.WithContext(cmd.Context(), deps.Logger))
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.locale, "locale", "l", "", "language code (default: stored preference)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newListCmd(deps, opts),
		newSearchCmd(deps, opts),
		newShowCmd(deps, opts),
		newCategoriesCmd(deps, opts),
		newExportCmd(deps, opts),
		newPrefsCmd(deps),
	)

	return root
}

// resolveLocale returns the --locale flag when set, else the stored language.
func (o *rootOptions) resolveLocale(prefs *app.Preferences) (string, error) {
	if o.locale == "" {
		return prefs.Lang(), nil
	}

	code, ok := i18n.ParseLang(o.locale)
	if !ok {
		return "", fmt.Errorf("unsupported locale %q", o.locale)
	}

	return code, nil
}

func (o *rootOptions) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), o.noColor)
}
