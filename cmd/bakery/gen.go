package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syssam/bakery/gen"
	"github.com/syssam/bakery/schema"
)

var (
	genSchema  string
	genTarget  string
	genPackage string
	genWatch   bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate typed factory helpers from a schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !genWatch {
			set, err := schema.Load(genSchema)
			if err != nil {
				return fail(err)
			}
			if err := gen.New(set, genTarget).WithPackage(genPackage).Generate(cmd.Context()); err != nil {
				return fail(err)
			}
			status("generated %d factory file(s) in %s", len(set.Models), genTarget)
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		status("watching %s", genSchema)
		err := gen.Watch(ctx, genSchema, genTarget, genPackage, func(err error) {
			if err != nil {
				_ = fail(err)
				return
			}
			status("regenerated %s", genTarget)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	genCmd.Flags().StringVar(&genSchema, "schema", "schema.json", "schema file to load")
	genCmd.Flags().StringVar(&genTarget, "target", "fixtures", "output directory")
	genCmd.Flags().StringVar(&genPackage, "package", "fixtures", "generated package name")
	genCmd.Flags().BoolVar(&genWatch, "watch", false, "regenerate on schema changes")
}
