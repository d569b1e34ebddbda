package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/christophertubbs/redispass/internal/application"
)

func newPingCommand(svc *application.SelectorService) *cobra.Command {
	return &cobra.Command{
		Use:   "ping [field=value ...]",
		Short: "Resolve a credential, connect, and ping the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			constraints, err := parseConstraints(args)
			if err != nil {
				return err
			}

			conn, err := svc.Connect(cmd.Context(), constraints, nil)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := conn.Ping(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "PONG")
			return nil
		},
	}
}
