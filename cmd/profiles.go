package cmd

import (
	"os"

	"catalog-reconciler/feature/catalog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// profilesCmd prints the registered source profiles.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List source profiles as YAML",
	Long: `Print every registered profile, built-in and from the profiles file, in the
same YAML layout the profiles file uses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		out := struct {
			Profiles []catalog.Profile `yaml:"profiles"`
		}{Profiles: a.profiles.Profiles()}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	},
}

func init() {
	RootCmd.AddCommand(profilesCmd)
}
