// Package validate handles the SIE validate command
package validate

import (
	"fmt"
	"os"

	"nordledger/sie-import/cmd/root"
	"nordledger/sie-import/pkg/sie"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a SIE file",
	Long:  `Parse and validate a SIE file, reporting errors, warnings and a content summary.`,
	Args:  cobra.MaximumNArgs(1),
	Run:   validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
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
	result := sie.Validate(doc)

	fmt.Printf("Format:       %s\n", doc.Format)
	fmt.Printf("Valid:        %t\n", result.IsValid)
	fmt.Printf("Accounts:     %d\n", result.Summary.AccountCount)
	fmt.Printf("Fiscal years: %d\n", result.Summary.FiscalYearCount)
	fmt.Printf("Vouchers:     %d\n", result.Summary.VoucherCount)
	fmt.Printf("Transactions: %d\n", result.Summary.TransactionCount)

	for _, w := range result.Warnings {
		root.Log.Warn(w)
	}
	for _, e := range result.Errors {
		root.Log.Error(e)
	}
	if !result.IsValid {
		os.Exit(1)
	}
}
