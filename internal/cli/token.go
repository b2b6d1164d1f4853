package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elliotchen37/rmxlrc/internal/service"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Request a new Musixmatch user token",
		Long: `Request a fresh user token from the desktop API and print it.

With --save the token is written to the config file and used by later
runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runToken(cmd)
		},
	}

	cmd.Flags().Bool("save", false, "Store the token in the config file")
	return cmd
}

func (a *app) runToken(cmd *cobra.Command) error {
	save, _ := cmd.Flags().GetBool("save")

	svc := service.New(a.settings, a.baseURL, a.logger)
	defer svc.Close()

	token, err := svc.Session.Refresh(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, token)

	if save {
		a.settings.Token = token
		if err := a.settings.Save(a.configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		a.logger.Info().Str("config", a.configPath).Msg("token saved")
	}
	return nil
}
