package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsonbrowse/internal/adapters/textout"
	"jsonbrowse/internal/application"
	"jsonbrowse/internal/domain"
)

var renderQuery string

var renderCmd = &cobra.Command{
	Use:   "render [fragment]",
	Short: "Render a location as plain text",
	Long: `Render the page a fragment points at. Without a fragment the users
listing is shown. Unreachable remote data renders as an empty listing and is
logged to stderr.

Examples:
  jsonbrowse-cli render
  jsonbrowse-cli render '#users#todos?userId=1'
  jsonbrowse-cli render '#users' --query leanne`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fragment := domain.DefaultFragment
		if len(args) == 1 {
			fragment = args[0]
		}
		state := application.NewAppState(fragment, renderQuery)
		if state.Fragment == "" {
			state.Fragment = domain.DefaultFragment
		}

		page := renderer.RenderNow(cmd.Context(), state)
		return textout.Write(cmd.OutOrStdout(), page)
	},
}

var crumbsCmd = &cobra.Command{
	Use:   "crumbs <fragment>",
	Short: "Show the breadcrumb trail of a fragment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range domain.Breadcrumbs(domain.NormalizeFragment(args[0])) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", domain.Sanitize(c.Label), domain.Sanitize(c.Fragment))
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderQuery, "query", "q", "", "filter the listing")
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(crumbsCmd)
}
