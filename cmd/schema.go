package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/pagebridge/internal/app"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the OpenAPI document",
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	schemaCmd.Flags().String("format", "json", "json or yaml")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	log, cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	sch, err := app.BuildSchema(cfg, log)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(sch.Document, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
	case "yaml", "yml":
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		if raw, err = yaml.Marshal(generic); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
		return err
	}
	return os.WriteFile(out, raw, 0o644)
}
