package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "umlgen",
		Short: "Extract UML diagram models from requirement text",
		Long: `umlgen converts free-text requirements into structured diagram
models: user stories become class, use case, sequence and activity
elements, and architecture narrations become component and deployment
topology. Output is PlantUML source or the raw element list as JSON.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cmd.ConfigPath, "config", "c", "normalization.yaml", "normalization rule file")
	rootCmd.PersistentFlags().StringVarP(&cmd.ModelPath, "model", "m", "", "tagger phrase database (optional)")
	rootCmd.PersistentFlags().StringVarP(&cmd.Format, "format", "f", "puml", "output format: puml or json")
	rootCmd.PersistentFlags().StringVarP(&cmd.OutPath, "out", "o", "", "output file (default stdout)")
	rootCmd.PersistentFlags().BoolVarP(&cmd.Verbose, "verbose", "v", false, "debug logging")

	cmd.RegisterCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
