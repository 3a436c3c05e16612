package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Flag getters that panic on lookup errors. A failed lookup means the flag
// was never registered, which is a bug in the command definition.

func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("undefined flag --%s: %v", name, err))
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("undefined flag --%s: %v", name, err))
	}
	return val
}
