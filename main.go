package main

import (
	"os"

	"nordledger/sie-import/cmd/parse"
	"nordledger/sie-import/cmd/prepare"
	"nordledger/sie-import/cmd/root"
	"nordledger/sie-import/cmd/validate"
)

func main() {
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(prepare.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
