package cmd

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	var (
		blockSize int
		dotenv    bool
	)

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate base64 cookie keys for the panel's form state",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch blockSize {
			case 16, 24, 32:
			default:
				return fmt.Errorf("invalid --block-size %d (want 16, 24 or 32)", blockSize)
			}
			hash := securecookie.GenerateRandomKey(64)
			block := securecookie.GenerateRandomKey(blockSize)
			if hash == nil || block == nil {
				return errors.New("read random bytes: entropy source unavailable")
			}

			prefix := "export "
			if dotenv {
				prefix = ""
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%sCOOKIE_HASH_KEY=%s\n", prefix, base64.StdEncoding.EncodeToString(hash))
			fmt.Fprintf(out, "%sCOOKIE_BLOCK_KEY=%s\n", prefix, base64.StdEncoding.EncodeToString(block))
			return nil
		},
	}

	cmd.Flags().IntVar(&blockSize, "block-size", 32, "encryption key size in bytes: 16, 24 or 32 (AES-128/192/256)")
	cmd.Flags().BoolVar(&dotenv, "dotenv", false, "print KEY=value lines without the export prefix")
	return cmd
}
