package cmd

import (
	"fmt"
	"os"

	"github.com/arcanaland/deckseer/internal/validator"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a catalog file",
	Long: `Validate checks that a catalog JSON file can be loaded: every record has a
multiverseid, name, colors and types. It also warns about duplicate ids,
unknown colors, and recommendations pointing at cards missing from the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath := args[0]

		// Check if path exists
		if _, err := os.Stat(catalogPath); os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", catalogPath)
		}

		// Create validator and run validation
		v := validator.NewValidator(catalogPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Catalog '%s' is valid (%d cards).\n", catalogPath, results.Cards)
		} else {
			fmt.Printf("❌ Catalog '%s' has %d validation errors:\n", catalogPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
