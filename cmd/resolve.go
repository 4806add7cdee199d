package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// resolveCmd answers "which sample mode would this item get": the layered
// ALL -> Owner.ALL -> Owner.id precedence applied to qualified ids.
var resolveCmd = &cobra.Command{
	Use:   "resolve <Owner.id> [Owner.id ...]",
	Short: "Resolve the effective sample mode for qualified item ids",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides, err := loadOverrides()
		if err != nil {
			return err
		}
		for _, qid := range args {
			owner, id, found := strings.Cut(qid, ".")
			if !found || owner == "" || id == "" {
				return fmt.Errorf("%q is not a qualified Owner.id name", qid)
			}
			fmt.Printf("%s\t%s\n", qid, overrides.Resolve(owner, id))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
