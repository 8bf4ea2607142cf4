package main

import (
	"context"
	"errors"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	out    io.Writer
	openDB func(ctx context.Context, conf *core.Config) (*sqlx.DB, error)
	db     *sqlx.DB
}

func newCommandLine(conf *core.Config, out io.Writer) *commandLine {
	return &commandLine{
		conf:   conf,
		out:    out,
		openDB: database.Open,
	}
}

// database lazily connects to postgres; only import and migrate need it.
func (cli *commandLine) database(ctx context.Context) (*sqlx.DB, error) {
	if cli.db == nil {
		db, err := cli.openDB(ctx, cli.conf)
		if err != nil {
			return nil, err
		}
		cli.db = db
	}
	return cli.db, nil
}

func (cli *commandLine) close() {
	if cli.db != nil && cli.db.DB != nil {
		_ = cli.db.Close()
	}
	cli.db = nil
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "PUNotes catalog administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.AddCommand(
		cli.validateCmd(),
		cli.exportCmd(),
		cli.importCmd(),
		cli.diffCmd(),
		cli.hashPasswordCmd(),
		cli.migrateCmd(),
	)
	return root
}

// run executes the command line args, program name included.
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	return root.Execute()
}

func (cli *commandLine) hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hashpassword",
		Short: "Hash the admin password (prompted) for the ADMIN_PASSWORDHASH setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.hashPassword(cmd)
		},
	}
}
