package cmd

import (
	"fmt"
	"time"

	"gestorpro/internal/ledger"
	"gestorpro/internal/license"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Initialize or repair the data file and print what it holds",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, _, store, err := setup(cmd)
	if err != nil {
		return err
	}
	doc, err := store.Read()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "data file:    %s\n", store.Path())
	fmt.Fprintf(out, "products:     %d\n", len(doc.Products))
	fmt.Fprintf(out, "sales:        %d\n", len(doc.Sales))
	fmt.Fprintf(out, "receivables:  %d\n", len(doc.Receivables))
	fmt.Fprintf(out, "quotes:       %d\n", len(doc.Quotes))
	fmt.Fprintf(out, "customers:    %d\n", len(doc.Customers))
	fmt.Fprintf(out, "users:        %d\n", len(doc.Users))
	fmt.Fprintf(out, "next sale id: %d\n", ledger.NextTransactionID(doc.Sales, doc.Receivables))

	switch exp := doc.Settings.ExpirationDate; {
	case exp == nil:
		fmt.Fprintln(out, "license:      no expiration")
	case license.Expired(*doc.Settings, time.Now()):
		fmt.Fprintf(out, "license:      expired on %s\n", exp.Local().Format(time.DateTime))
	default:
		fmt.Fprintf(out, "license:      valid until %s\n", exp.Local().Format(time.DateTime))
	}

	summary := ledger.Summarize(doc, cfg.LowStockThreshold, time.Now())
	fmt.Fprintf(out, "revenue:      %s\n", summary.Display.Revenue)
	fmt.Fprintf(out, "receivable:   %s\n", summary.Display.PendingReceivables)
	fmt.Fprintf(out, "stock value:  %s\n", summary.Display.StockValue)
	return nil
}
