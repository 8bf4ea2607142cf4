package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/adspirelabs/punotes/core/dataset"
	pgrepos "github.com/adspirelabs/punotes/storage/database/postgres"
)

var errNoDataDir = errors.New("no data directory")

// dataFS is the configured data directory, or the embedded seed when none is set.
func (cli *commandLine) dataFS(dir string) fs.FS {
	if dir == "" {
		dir = cli.conf.Catalog.DataDir
	}
	if dir == "" {
		return dataset.Seed()
	}
	return os.DirFS(dir)
}

func (cli *commandLine) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [DIR]",
		Short: "Validate every dataset file of a data directory (default: configured data dir or embedded seed)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var dir string
			if len(args) > 0 {
				dir = args[0]
			}
			cat, err := dataset.LoadDir(cli.dataFS(dir))
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "ok: %d materials, %d resources, %d books, %d posts\n",
				len(cat.Materials), len(cat.Resources), len(cat.Books), len(cat.Posts))
			return nil
		},
	}
}

func (cli *commandLine) exportCmd() *cobra.Command {
	var kind, out, dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dataset as JSON to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := dataset.ParseKind(kind)
			if err != nil {
				return err
			}
			data, err := cli.export(cmd.Context(), k, dir)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cli.out.Write(data)
				return err
			}
			return writeFile(out, data)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(dataset.Materials), "dataset kind: materials, resources, literature or blog")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&dir, "dir", "", "source data directory")
	return cmd
}

// export reads materials from postgres when that engine is configured, other kinds from the data directory.
func (cli *commandLine) export(ctx context.Context, k dataset.Kind, dir string) ([]byte, error) {
	if k == dataset.Materials && cli.conf.Database.UsesPostgres() {
		db, err := cli.database(ctx)
		if err != nil {
			return nil, err
		}
		materials, err := pgrepos.NewMaterialRepository(db).ListMaterials(ctx)
		if err != nil {
			return nil, err
		}
		return dataset.MaterialCodec{}.EncodeMaterials(materials)
	}

	cat, err := dataset.LoadDir(cli.dataFS(dir))
	if err != nil {
		return nil, err
	}
	var v interface{}
	switch k {
	case dataset.Materials:
		v = cat.Materials
	case dataset.Resources:
		v = cat.Resources
	case dataset.Literature:
		v = cat.Books
	case dataset.Blog:
		v = cat.Posts
	}
	return dataset.Encode(v)
}

func (cli *commandLine) importCmd() *cobra.Command {
	var kind, dir string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a dataset file and install it in the data directory (materials go to postgres when configured)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := dataset.ParseKind(kind)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading import file")
			}
			n, err := cli.importDataset(cmd.Context(), k, data, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "imported %d %s\n", n, k)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(dataset.Materials), "dataset kind: materials, resources, literature or blog")
	cmd.Flags().StringVar(&dir, "dir", "", "target data directory (default: configured data dir)")
	return cmd
}

func (cli *commandLine) importDataset(ctx context.Context, k dataset.Kind, data []byte, dir string) (int, error) {
	n, err := decodeCount(k, data)
	if err != nil {
		return 0, err
	}

	if k == dataset.Materials && cli.conf.Database.UsesPostgres() {
		materials, err := dataset.DecodeMaterials(data)
		if err != nil {
			return 0, err
		}
		db, err := cli.database(ctx)
		if err != nil {
			return 0, err
		}
		if err = pgrepos.NewMaterialRepository(db).ReplaceMaterials(ctx, materials); err != nil {
			return 0, err
		}
		return n, nil
	}

	if dir == "" {
		dir = cli.conf.Catalog.DataDir
	}
	if dir == "" {
		return 0, errors.Wrapf(errNoDataDir, "pass --dir or set %s_CATALOG_DATADIR", cli.conf.Env)
	}
	return n, writeFile(filepath.Join(dir, k.FileName()), data)
}

// decodeCount fully decodes data as kind k and returns the number of entries.
func decodeCount(k dataset.Kind, data []byte) (int, error) {
	switch k {
	case dataset.Materials:
		v, err := dataset.DecodeMaterials(data)
		return len(v), err
	case dataset.Resources:
		v, err := dataset.DecodeResources(data)
		return len(v), err
	case dataset.Literature:
		v, err := dataset.DecodeBooks(data)
		return len(v), err
	case dataset.Blog:
		v, err := dataset.DecodePosts(data)
		return len(v), err
	}
	return 0, dataset.ErrUnknownKind
}

func (cli *commandLine) diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff CURRENT NEW",
		Short: "Print a unified diff between two dataset files",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading current file")
			}
			b, err := os.ReadFile(args[1])
			if err != nil {
				return errors.Wrap(err, "reading new file")
			}
			diff, err := dataset.Diff(filepath.Base(args[0]), a, b)
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Fprintln(cli.out, "no changes")
				return nil
			}
			fmt.Fprint(cli.out, diff)
			return nil
		},
	}
}

// writeFile replaces path atomically so a watching server never reads a partial file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "installing file")
}
