// Package cli is the driving adapter: a thin cobra surface over the
// selector service. Commands parse field=value arguments through the
// credential schema and print results; all decisions live in the
// application layer.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/christophertubbs/redispass/internal/application"
)

// NewRootCommand builds the redispass command tree over the given service.
func NewRootCommand(svc *application.SelectorService) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "redispass",
		Short: "Local credential manager for Redis connections",
		Long: `redispass stores Redis connection parameter sets in a local SQLite file
and picks the best match for a set of constraints: of all stored credentials
that satisfy every constraint exactly, the least customized one wins.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newGetCommand(svc))
	rootCmd.AddCommand(newHostCommand(svc))
	rootCmd.AddCommand(newSaveCommand(svc))
	rootCmd.AddCommand(newListCommand(svc))
	rootCmd.AddCommand(newPingCommand(svc))

	return rootCmd
}
