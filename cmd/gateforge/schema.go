package main

import (
	"encoding/json"
	"fmt"

	"github.com/artpar/gateforge/core/registry"
	"github.com/artpar/gateforge/core/schema"
	"github.com/artpar/gateforge/plugins/shiftreg"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [subtype]",
	Short: "Print plugin configuration schemas as JSON",
	Long: `Print the declarative configuration schema of every registered
expansion plugin, or of a single plugin when a subtype is given.
Authoring tools consume this output to validate documents and render
configuration forms.

Examples:
  gateforge schema
  gateforge schema shiftreg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	reg := registry.New()
	if err := reg.Register(shiftreg.New()); err != nil {
		return err
	}

	var out any
	if len(args) == 1 {
		p, ok := reg.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown subtype %q (registered: %v)", args[0], reg.Subtypes())
		}
		out = p.Describe()
	} else {
		entries := make([]schema.Entry, 0)
		for _, p := range reg.List() {
			entries = append(entries, p.Describe())
		}
		out = entries
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
