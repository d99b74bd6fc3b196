package main

import (
	"fmt"
	"os"

	"fjacquet/qfx-rebank/cmd/batch"
	"fjacquet/qfx-rebank/cmd/convert"
	"fjacquet/qfx-rebank/cmd/root"
	"fjacquet/qfx-rebank/cmd/verify"
	"fjacquet/qfx-rebank/internal/config"
	"fjacquet/qfx-rebank/internal/qfxerror"
)

func init() {
	// Load .env before any configuration is read; nothing has logged yet.
	if envFile, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading %s: %v\n", envFile, err)
	}

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(verify.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(qfxerror.ExitCode(err))
	}
}
