// Command seqcli is a small harness for the sequence theory engine: it
// parses a flat assertion script against the reference SAT-backed host
// and reports sat/unsat/unknown plus a model for any tracked variables.
package main

import (
	"fmt"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "seqcli",
		Short: "seqcli",
		Long:  "A CLI harness for exercising the sequence theory decision procedure.",

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newCheckCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <script>",
		Short: "check satisfiability of an assertion script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			result, vars, h, err := runScript(string(data))
			if err != nil {
				return err
			}
			fmt.Println(result)
			if result == "sat" {
				names := make([]string, 0, len(vars))
				for name := range vars {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Printf("  %s = %q\n", name, h.Model(vars[name]))
				}
			}
			return nil
		},
	}
}
