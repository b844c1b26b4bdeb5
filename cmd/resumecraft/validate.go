package main

import (
	"fmt"
	"os"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume document JSON file",
	Long: `Checks a resume document against the canonical schema. With --schema the given JSON Schema
file is used instead; with --tolerant nulls are accepted where model output may contain them.`,
	RunE: runValidate,
}

var (
	validateJSONPath   string
	validateSchemaPath string
	validateTolerant   bool
)

func init() {
	validateCmd.Flags().StringVar(&validateJSONPath, "json", "", "Path to document JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchemaPath, "schema", "", "Path to a JSON Schema file (default: built-in document schema)")
	validateCmd.Flags().BoolVar(&validateTolerant, "tolerant", false, "Accept null sequences and objects")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchemaPath != "" {
		err = schemas.ValidateJSON(validateSchemaPath, validateJSONPath)
	} else {
		var content []byte
		content, err = os.ReadFile(validateJSONPath)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		mode := schemas.Strict
		if validateTolerant {
			mode = schemas.Tolerant
		}
		err = schemas.ValidateDocument(string(content), mode)
	}

	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Validation failed")
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}
