package cmd

import (
	"fmt"
	"time"

	"gestorpro/internal/database"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a SQLite snapshot of the data file for spreadsheets and BI tools",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "snapshot path (default gestorpro-YYYYMMDD.db)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	_, logger, store, err := setup(cmd)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("gestorpro-%s.db", time.Now().Format("20060102"))
	}

	doc, err := store.Read()
	if err != nil {
		return err
	}
	counts, err := database.ExportSQLite(doc, out, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %d products, %d transactions, %d quotes, %d customers to %s\n",
		counts.Products, counts.Transactions, counts.Quotes, counts.Customers, out)
	return nil
}
