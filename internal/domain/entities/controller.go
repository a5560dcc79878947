package entities

import "github.com/spf13/cobra"

// ControllerBind is the cobra metadata a controller is mounted with.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is a CLI entry point backed by a domain command. A returned
// error makes the process exit non-zero.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}

// FlagController is implemented by controllers with their own flags.
type FlagController interface {
	Controller
	AddFlags(cmd *cobra.Command)
}
