package cli

import (
	"github.com/spf13/cobra"

	"github.com/christophertubbs/redispass/internal/application"
	"github.com/christophertubbs/redispass/internal/domain/model"
)

func newSaveCommand(svc *application.SelectorService) *cobra.Command {
	return &cobra.Command{
		Use:   "save field=value [field=value ...]",
		Short: "Store a credential",
		Long: `Store a credential built from the default record plus the given field
assignments, e.g.:

  redispass save host=db1.internal port=6380 username=app password=hunter2

Saving a credential with the same host, username, password, port, db, and
ssl values as an existing one replaces it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseConstraints(args)
			if err != nil {
				return err
			}

			cred := model.DefaultCredential()
			for name, value := range assignments {
				field, err := model.FieldByName(name)
				if err != nil {
					return err
				}
				if err := field.Set(&cred, value); err != nil {
					return err
				}
			}

			return svc.Save(cmd.Context(), cred)
		},
	}
}
