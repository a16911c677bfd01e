package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/alaqidah-service/internal/content"
)

func newListCmd(deps Deps, opts *rootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every point that has text in the language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, deps, opts, content.Query{Category: category})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category")

	return cmd
}

func newSearchCmd(deps Deps, opts *rootOptions) *cobra.Command {
	var (
		category string
		fuzzy    bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search points by text or number",
		Long: `Search matches points whose text contains the query, ignoring case, or
whose number contains it. With --fuzzy, titles and texts are ranked by
fuzzy similarity instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, deps, opts, content.Query{
				Text:     args[0],
				Category: category,
				Fuzzy:    fuzzy,
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "restrict to one category")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "rank by fuzzy similarity")

	return cmd
}

func runSearch(cmd *cobra.Command, deps Deps, opts *rootOptions, q content.Query) error {
	locale, err := opts.resolveLocale(deps.Prefs)
	if err != nil {
		return err
	}
	q.Locale = locale

	res := deps.Quotes.Search(cmd.Context(), q)
	pointWord := deps.Quotes.Labels(locale).Point

	p := opts.printer(cmd)
	for _, d := range res.Quotes {
		p.quoteLine(d, pointWord)
	}
	p.summary("%d of %d points (%s, category %s)", len(res.Quotes), res.Total, res.Locale, res.Category)

	return nil
}

func newShowCmd(deps Deps, opts *rootOptions) *cobra.Command {
	var explanation bool

	cmd := &cobra.Command{
		Use:   "show <no>",
		Short: "Print one point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			no, err := parsePointNumber(args[0])
			if err != nil {
				return err
			}

			locale, err := opts.resolveLocale(deps.Prefs)
			if err != nil {
				return err
			}

			d, err := deps.Quotes.Get(cmd.Context(), locale, no)
			if err != nil {
				return err
			}

			opts.printer(cmd).quote(*d, deps.Quotes.Labels(locale).Point, explanation)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&explanation, "explanation", "e", false, "include the explanation")

	return cmd
}

func newCategoriesCmd(deps Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with the number of points in each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			locale, err := opts.resolveLocale(deps.Prefs)
			if err != nil {
				return err
			}

			opts.printer(cmd).categories(deps.Quotes.Categories(cmd.Context(), locale))

			return nil
		},
	}
}

func parsePointNumber(arg string) (int, error) {
	no, err := strconv.Atoi(arg)
	if err != nil || no < 1 {
		return 0, fmt.Errorf("invalid point number %q", arg)
	}

	return no, nil
}
