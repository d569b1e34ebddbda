package cli

import (
	"github.com/spf13/cobra"

	"github.com/christophertubbs/redispass/internal/application"
)

func newHostCommand(svc *application.SelectorService) *cobra.Command {
	return &cobra.Command{
		Use:   "host <host>",
		Short: "Resolve the best stored credential for a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := svc.SelectByHost(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printCredential(cmd.OutOrStdout(), cred)
			return nil
		},
	}
}
