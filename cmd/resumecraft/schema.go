package main

import (
	"encoding/json"
	"fmt"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/schemas"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the resume document JSON Schema",
	RunE:  runSchema,
}

var (
	schemaTolerant bool
	schemaOutput   string
)

func init() {
	schemaCmd.Flags().BoolVar(&schemaTolerant, "tolerant", false, "Print the schema used for model output")
	schemaCmd.Flags().StringVarP(&schemaOutput, "out", "o", "", "Output path (default: stdout)")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, _ []string) error {
	mode := schemas.Strict
	if schemaTolerant {
		mode = schemas.Tolerant
	}

	data, err := json.MarshalIndent(schemas.JSONSchema(schemas.ResumeDocument(), mode), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	return writeOutput(schemaOutput, cmd.OutOrStdout(), append(data, '\n'))
}
