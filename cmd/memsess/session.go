package main

import (
	"encoding/json"
	"fmt"

	"github.com/icza/memsession"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <session-id>",
	Short: "Print a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore(cmd, nil)
		if err != nil {
			return err
		}

		sess, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("loading session '%s': %w", args[0], err)
		}
		if sess == nil {
			return fmt.Errorf("session '%s' not found", args[0])
		}

		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <session-id> <json>",
	Short: "Store a session given as JSON",
	Long: `Store a session given as a JSON object, for example:

  memsess set abc123 '{"cookie":{"maxAge":5000},"user":"alice"}'

The session expires after the max age of its cookie, or after a day if it has none.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := memsession.NewSession()
		if err := json.Unmarshal([]byte(args[1]), sess); err != nil {
			return fmt.Errorf("invalid session JSON: %w", err)
		}
		if maxAge, _ := cmd.Flags().GetDuration("max-age"); maxAge != 0 {
			sess.SetMaxAge(maxAge)
		}

		store, err := newStore(cmd, nil)
		if err != nil {
			return err
		}
		if err := store.Set(args[0], sess); err != nil {
			return fmt.Errorf("storing session '%s': %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored session '%s' under key '%s' for %ds\n",
			args[0], store.Key(args[0]), memsession.TTL(sess))
		return nil
	},
}

var destroyCmd = &cobra.Command{
	Use:   "destroy <session-id>...",
	Short: "Destroy one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore(cmd, nil)
		if err != nil {
			return err
		}

		failed := 0
		for _, id := range args {
			if err := store.Destroy(id); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error destroying '%s': %v\n", id, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Destroyed session '%s'\n", id)
		}
		if failed > 0 {
			return fmt.Errorf("failed to destroy %d session(s)", failed)
		}
		return nil
	},
}

var lengthCmd = &cobra.Command{
	Use:   "length",
	Short: "Print the number of stored sessions, if the store can tell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore(cmd, nil)
		if err != nil {
			return err
		}

		n, known, err := store.Length()
		if err != nil {
			return err
		}
		if !known {
			fmt.Fprintln(cmd.OutOrStdout(), "unknown")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all sessions (flushes the whole cache)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore(cmd, nil)
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared all sessions")
		return nil
	},
}

func init() {
	setCmd.Flags().Duration("max-age", 0, "max age of the session cookie, e.g. 30m")

	rootCmd.AddCommand(getCmd, setCmd, destroyCmd, lengthCmd, clearCmd)
}
