package cli

import (
	"github.com/spf13/cobra"

	"github.com/christophertubbs/redispass/internal/application"
)

func newGetCommand(svc *application.SelectorService) *cobra.Command {
	return &cobra.Command{
		Use:   "get [field=value ...]",
		Short: "Resolve the best-matching stored credential",
		Long: `Resolve the stored credential that satisfies every given constraint
exactly, preferring the least customized match. With no constraints and an
empty store, the unauthenticated default credential is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			constraints, err := parseConstraints(args)
			if err != nil {
				return err
			}

			cred, err := svc.Select(cmd.Context(), constraints)
			if err != nil {
				return err
			}

			printCredential(cmd.OutOrStdout(), cred)
			return nil
		},
	}
}
