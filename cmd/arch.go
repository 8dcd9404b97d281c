package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/arch"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/export"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

func componentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "component <narration.txt|->",
		Short: "Extract a component diagram model from an architecture narration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStructural(args[0], export.DiagramComponent, func(rt *runtime, narration string) []*model.Element {
				return arch.NewComponentExtractor(rt.parser, rt.tag, rt.canon, rt.log).Extract(narration)
			})
		},
	}
}

func deploymentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deployment <narration.txt|->",
		Short: "Extract a deployment diagram model from an architecture narration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStructural(args[0], export.DiagramDeployment, func(rt *runtime, narration string) []*model.Element {
				return arch.NewDeploymentExtractor(rt.parser, rt.tag, rt.canon, rt.log).Extract(narration)
			})
		},
	}
}

// runStructural is the shared body of the narration-driven commands
func runStructural(inputPath string, d export.Diagram, run func(*runtime, string) []*model.Element) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	narration, err := readNarration(inputPath)
	if err != nil {
		return err
	}

	elements := run(rt, narration)
	rt.log.Infow("extraction finished", "elements", len(elements))
	if err := writeOutput(d, elements); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
