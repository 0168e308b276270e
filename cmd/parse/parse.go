// Package parse handles the SIE parse command
package parse

import (
	"fmt"
	"os"

	"nordledger/sie-import/cmd/root"
	"nordledger/sie-import/pkg/sie"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a SIE file and print a summary",
	Long:  `Parse a SIE4 or SIE5 file and print the parsed document summary with any line-level errors.`,
	Args:  cobra.MaximumNArgs(1),
	Run:   parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		root.Log.Fatal("No input file given; use an argument or --input")
	}

	content, err := os.ReadFile(input)
	if err != nil {
		root.Log.WithError(err).Fatalf("Cannot read %s", input)
	}

	doc := sie.Parse(string(content), input)
	root.Log.Infof("Detected format: %s", doc.Format)

	fmt.Printf("Company:          %s (%s)\n", doc.Company.Name, doc.Company.OrganizationNumber)
	fmt.Printf("Fiscal years:     %d\n", len(doc.FiscalYears))
	fmt.Printf("Accounts:         %d\n", len(doc.Accounts))
	fmt.Printf("Vouchers:         %d\n", len(doc.Vouchers))
	fmt.Printf("Transactions:     %d\n", doc.TransactionCount())
	fmt.Printf("Opening balances: %d\n", len(doc.OpeningBalances))
	fmt.Printf("Closing balances: %d\n", len(doc.ClosingBalances))

	for _, issue := range doc.Errors {
		root.Log.Warnf("line %d: %s", issue.Line, issue.Message)
	}
	if doc.HasErrors() {
		root.Log.Errorf("Parsed with %d errors", len(doc.Errors))
		os.Exit(1)
	}
}
