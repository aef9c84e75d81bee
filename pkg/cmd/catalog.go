package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/config"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/source"
)

var (
	CatalogCmd = &cobra.Command{
		Use:   CatalogCmdName,
		Short: CatalogCmdShort,
	}

	catalogImportCmd = &cobra.Command{
		Use:   "import <pattern>",
		Short: "Upsert the cars of catalog files into PostgreSQL",
		Example: `  carfinder catalog import 'catalog/**/*.yaml'
  carfinder catalog import cars.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(vip, nil)
			if err != nil {
				return err
			}

			files, err := source.NewFile(ctx, args[0], nil)
			if err != nil {
				return err
			}
			cars, err := files.List(ctx, dal.DefaultFilter())
			if err != nil {
				return err
			}

			db, err := source.NewPostgres(ctx, cfg.Postgres.DSN, cfg.Retry(nil))
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Import(ctx, cars); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d cars\n", len(cars))
			return nil
		},
	}

	catalogExportCmd = &cobra.Command{
		Use:   "export <file>",
		Short: "Write the configured catalog to a YAML, JSON or Parquet file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cars, err := a.source.List(cmd.Context(), dal.DefaultFilter())
			if err != nil {
				return err
			}
			if err := source.WriteFile(args[0], cars); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d cars to %s\n", len(cars), args[0])
			return nil
		},
	}
)

func init() {
	CatalogCmd.PersistentFlags().String("postgres-dsn", "", "PostgreSQL connection string")
	bindFlag("postgres.dsn", CatalogCmd.PersistentFlags().Lookup("postgres-dsn"))
	CatalogCmd.AddCommand(catalogImportCmd, catalogExportCmd)
}
