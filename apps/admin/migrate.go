package main

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/adspirelabs/punotes/storage/database"
)

var gooseRunFunc = database.Run // mockable

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version, fix, create)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.migrate(cmd, args)
		},
	}
}

func (cli *commandLine) migrate(cmd *cobra.Command, args []string) error {
	db, err := cli.database(cmd.Context())
	if err != nil {
		return err
	}
	var sqlDB *sql.DB
	if db != nil {
		sqlDB = db.DB
	}
	return gooseRunFunc(sqlDB, args[0], args[1:]...)
}
