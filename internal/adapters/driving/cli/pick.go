package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ytpicker/internal/adapters/driving/tui"
)

// runPicker is replaced in tests; the real picker needs a terminal.
var runPicker = func(cmd *cobra.Command, s *Services) (*tui.Selection, error) {
	app, err := tui.NewApp(tui.NewPorts(s.Videos))
	if err != nil {
		return nil, err
	}
	return app.WithContext(cmd.Context()).Run()
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick a video",
	Long: `Opens the interactive picker. Type at least three characters to search
the channel, move through the results and press Enter to pick one.

The picked video is printed as "<id>\t<label>". Nothing is printed and
the exit status is zero when the picker is cancelled with Esc.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, _ []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}

	sel, err := runPicker(cmd, s)
	if err != nil {
		return err
	}
	if sel == nil {
		return nil
	}

	cmd.Printf("%s\t%s\n", sel.ID, sel.Label)
	return nil
}
