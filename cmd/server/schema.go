package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"showcase/internal/bootstrap"
	"showcase/internal/pkg/logger"
	"showcase/internal/platform/database"
	"showcase/internal/repository"
)

var schemaJSON bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the tables and columns of the variant's database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		db, err := bootstrap.OpenDatabase(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		tables, err := repository.NewSchemaInspector(db).Describe(cmd.Context())
		if err != nil {
			return err
		}

		if schemaJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tables)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, table := range tables {
			fmt.Fprintf(w, "%s\n", table.Name)
			for _, col := range table.Columns {
				nullable := "NOT NULL"
				if col.Nullable {
					nullable = "NULL"
				}
				key := ""
				if col.PrimaryKey {
					key = "PK"
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", col.Name, col.Type, nullable, key)
			}
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "print the schema as JSON")
	rootCmd.AddCommand(schemaCmd, versionCmd)
}
