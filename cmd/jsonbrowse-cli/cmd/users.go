package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jsonbrowse/internal/application/commands"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage local users",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <name> <email>",
	Short: "Create a local user",
	Example: `  jsonbrowse-cli users add "Ada Lovelace" ada@example.com`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewCreateUserCommand(store, args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a local user and its todos",
	Long: `Delete a local user and all of its todos.

Warning: This operation cannot be undone. Remote users cannot be deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteUserCommand(store, id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "Manage todos of local users",
}

var todosAddCmd = &cobra.Command{
	Use:   "add <user-id> <title>",
	Short: "Append an open todo to a local user",
	Example: `  jsonbrowse-cli todos add 1718000000000 "pay rent"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewCreateTodoCommand(store, id, args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", raw)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)

	rootCmd.AddCommand(todosCmd)
	todosCmd.AddCommand(todosAddCmd)
}
