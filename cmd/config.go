package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/arcanaland/deckseer/internal/config"
)

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Config prints the configuration after environment overrides are applied,
followed by the file it was read from. Overrides:
  DECKSEER_CATALOG_URL, DECKSEER_CATALOG_DIR, DECKSEER_DEFAULT_MODE,
  DECKSEER_MODES, DECKSEER_DEFAULT_DECK, DECKSEER_LOG_LEVEL`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			return fmt.Errorf("error encoding config: %w", err)
		}

		fmt.Println()
		fmt.Println("# config file:", config.GetConfigFilePath())
		fmt.Println("# deck library:", config.GetDeckLibraryPath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
