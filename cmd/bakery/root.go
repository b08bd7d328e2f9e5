package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "bakery <command>",
	Short:         "Test fixture factory for model schemas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(bakeCmd, genCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
}

func status(format string, args ...any) {
	fmt.Fprintln(os.Stderr, color.New(color.FgGreen).Sprintf(format, args...))
}

func fail(err error) error {
	fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error:"), err)
	return err
}
