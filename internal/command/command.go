package command

import (
	commandHandler "ems/internal/command/handler"
	"ems/internal/database/client"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewDBCheckHandler,
	client.NewMongoClient,
	wire.Bind(new(commandHandler.Pinger), new(*client.MongoClient)),
)

type Command struct {
	dbCheckHandler *commandHandler.DBCheckHandler
}

// NewCommand .
func NewCommand(
	dbCheckHandler *commandHandler.DBCheckHandler,
) *Command {
	return &Command{
		dbCheckHandler: dbCheckHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:          "dbcheck",
			Short:        "ping MongoDB with the configured connection settings",
			SilenceUsage: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				command, cleanup, err := newCmd()
				if err != nil {
					return err
				}
				defer cleanup()

				return command.dbCheckHandler.Check(cmd, args)
			},
		},
	)
}
