package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"world-dashboard/clock"
	"world-dashboard/delta"
	"world-dashboard/display"
	"world-dashboard/i18n"
)

var deltaJSON bool

var deltaCmd = &cobra.Command{
	Use:   "delta FROM TO",
	Short: "Show how many hours TO is ahead of or behind FROM",
	Example: `  world-dashboard delta London Tokyo
  world-dashboard delta "New York" sydney`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := newDirectory(cfg)
		if err != nil {
			return err
		}

		d, err := delta.NewCalculator(dir, clock.NewEngine()).Between(args[0], args[1])
		if err != nil {
			return err
		}

		if deltaJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
				"from":      d.From.Name,
				"to":        d.To.Name,
				"hours":     d.Hours,
				"direction": d.Direction,
			})
		}
		display.RenderDelta(cmd.OutOrStdout(), i18n.New(cfg.Locale), d)
		return nil
	},
}

func init() {
	deltaCmd.Flags().BoolVar(&deltaJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(deltaCmd)
}
