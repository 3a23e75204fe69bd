// Package cli wires the parley commands. It is strictly a consumer of
// internal/http: all protocol behavior lives there.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "parley",
	Short:   "A small client for control-plane services over TCP, TLS or Unix sockets",
	Version: version,
	Long: `Parley talks to a local or remote control-plane service over plain TCP,
TLS, or a Unix domain socket, with one request per invocation and a
buffered response. Targets can be spelled inline or named in a profile
file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command; main exits non-zero on error.
func Execute() error {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(benchCmd)
}
