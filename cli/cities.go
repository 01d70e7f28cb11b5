package cli

import (
	"github.com/spf13/cobra"

	"world-dashboard/display"
)

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List the configured cities",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := newDirectory(cfg)
		if err != nil {
			return err
		}
		display.RenderCities(cmd.OutOrStdout(), dir.All())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(citiesCmd)
}
