package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/booking-window/internal/auth"
)

func newPasswordHashCmd() *cobra.Command {
	var password string

	c := &cobra.Command{
		Use:   "password-hash",
		Short: "Print an ADMIN_PASSWORD_HASH value for the preview panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "export ADMIN_PASSWORD_HASH='%s'\n", hash)
			return nil
		},
	}

	c.Flags().StringVar(&password, "password", "", "admin password")
	_ = c.MarkFlagRequired("password")
	return c
}
