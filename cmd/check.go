package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/pagebridge/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content models and the generated OpenAPI document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, cfg, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		sch, err := app.BuildSchema(cfg, log)
		if err != nil {
			return err
		}
		if err := sch.Document.Validate(cmd.Context()); err != nil {
			return fmt.Errorf("openapi document is invalid: %w", err)
		}
		w := cmd.OutOrStdout()
		for _, ct := range sch.Registry.All() {
			fmt.Fprintf(w, "ok  %-32s %d api fields\n", ct.Label(), len(ct.Members()))
		}
		fmt.Fprintf(w, "%d content types, %d schema components\n", sch.Registry.Len(), len(sch.Typer.ComponentNames()))
		return nil
	},
}
