package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	databaseURL string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "petadopt",
	Short: "Record keeping for a pet adoption agency",
	Long: `petadopt tracks pets available for adoption, the adopters who register
interest, and the adoptions linking the two.

Examples:

  petadopt init
  petadopt pet add --name Rex --species dog --breed Labrador --age 3
  petadopt adopter register --name Jo --email jo@x.com
  petadopt adopt 1 1
  petadopt adoption list
  petadopt menu
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		failure(os.Stderr, "%s", describe(err))
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default petadopt.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database URL, postgres://... or sqlite:///path (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every SQL statement and operation")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(petCmd)
	rootCmd.AddCommand(adopterCmd)
	rootCmd.AddCommand(adoptCmd)
	rootCmd.AddCommand(adoptionCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(seedCmd)
}
