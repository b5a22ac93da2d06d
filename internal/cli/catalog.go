package cli

import (
	"fmt"
	"strings"

	"github.com/credlens/credlens/internal/catalog"
	"github.com/spf13/cobra"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the indicator catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indicator categories",
	Long: `List every manipulation indicator category with its weight and the
number of configured terms. Use --catalog to inspect a custom catalog file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		if catalogListPath != "" {
			loaded, err := catalog.LoadFile(catalogListPath)
			if err != nil {
				return err
			}
			cat = loaded
		}

		fmt.Printf("%-24s %-8s %-6s %s\n", "ID", "WEIGHT", "TERMS", "NAME")
		for _, c := range cat.All() {
			fmt.Printf("%-24s %-8.1f %-6d %s\n", c.ID, c.Weight, len(c.Keywords)+len(c.Patterns), c.Name)
		}

		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <category-id>",
	Short: "Show one category's full pattern set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()
		if catalogListPath != "" {
			loaded, err := catalog.LoadFile(catalogListPath)
			if err != nil {
				return err
			}
			cat = loaded
		}

		c, ok := cat.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown category: %s", args[0])
		}

		fmt.Printf("%s (%s)\n", c.Name, c.ID)
		fmt.Printf("Weight: %.1f\n", c.Weight)
		fmt.Printf("%s\n\n", c.Description)
		if len(c.Keywords) > 0 {
			fmt.Printf("Keywords: %s\n", strings.Join(c.Keywords, ", "))
		}
		if len(c.Patterns) > 0 {
			fmt.Printf("Patterns: %s\n", strings.Join(c.Patterns, " | "))
		}

		return nil
	},
}

var catalogListPath string

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogListPath, "catalog", "", "custom indicator catalog YAML")
}
