package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/christophertubbs/redispass/internal/application"
	"github.com/christophertubbs/redispass/internal/domain/model"
)

func newListCommand(svc *application.SelectorService) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(creds) == 0 {
				fmt.Fprintln(out, "no stored credentials")
				return nil
			}

			for i, cred := range creds {
				fmt.Fprintf(out, "[%d] specificity %.2f\n", i+1, cred.Specificity())
				for _, field := range model.Fields() {
					if field.Value(cred) == field.Default() {
						continue
					}
					fmt.Fprintf(out, "    %s = %s\n", field.Name(), displayValue(field, cred))
				}
			}
			return nil
		},
	}
}
