package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billdoc-dev/billdoc/internal/model"
)

func newNumberCommand(a *app) *cobra.Command {
	numberCmd := &cobra.Command{
		Use:   "number",
		Short: "Inspect and maintain document number counters",
	}
	numberCmd.AddCommand(
		newNumberNextCommand(a),
		newNumberCommitCommand(a),
		newNumberResetCommand(a),
	)
	return numberCmd
}

func newNumberNextCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "next <type>",
		Short: "Print the next number without recording it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseDocumentType(args[0])
			if err != nil {
				return err
			}
			root, err := a.root()
			if err != nil {
				return err
			}
			next, err := a.registry(root).PeekNext(t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

func newNumberCommitCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commit <type> <number>",
		Short: "Record a number as issued",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseDocumentType(args[0])
			if err != nil {
				return err
			}
			root, err := a.root()
			if err != nil {
				return err
			}
			if err := a.registry(root).Commit(t, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Committed %s %s\n", t, args[1])
			return nil
		},
	}
}

func newNumberResetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <type>",
		Short: "Restart the current month's counter at 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseDocumentType(args[0])
			if err != nil {
				return err
			}
			root, err := a.root()
			if err != nil {
				return err
			}
			reg := a.registry(root)
			if err := reg.Reset(t); err != nil {
				return err
			}
			next, err := reg.PeekNext(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s counter; next is %s\n", t, next)
			return nil
		},
	}
}
