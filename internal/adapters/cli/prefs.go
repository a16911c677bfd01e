package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/alaqidah-service/internal/app"
)

func newPrefsCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the stored language and theme",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the stored preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				printSnapshot(cmd, deps.Prefs.Snapshot())
				if deps.PrefsPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "file   %s\n", deps.PrefsPath)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <lang|theme> <value>",
			Short:     "Store a preference",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{"lang", "theme"},
			RunE: func(cmd *cobra.Command, args []string) error {
				var err error
				switch args[0] {
				case "lang":
					err = deps.Prefs.SetLang(args[1])
				case "theme":
					err = deps.Prefs.SetTheme(args[1])
				default:
					return fmt.Errorf("unknown preference %q: must be lang or theme", args[0])
				}
				if err != nil {
					return err
				}

				printSnapshot(cmd, deps.Prefs.Snapshot())
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle-theme",
			Short: "Switch between the light and dark card theme",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fmt.Fprintf(cmd.OutOrStdout(), "theme  %s\n", deps.Prefs.ToggleTheme())
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget the stored preferences",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				deps.Prefs.Reset()
				printSnapshot(cmd, deps.Prefs.Snapshot())
				return nil
			},
		},
	)

	return cmd
}

func printSnapshot(cmd *cobra.Command, s app.Snapshot) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lang   %s\n", s.Lang)
	fmt.Fprintf(out, "theme  %s\n", s.Theme)
}
