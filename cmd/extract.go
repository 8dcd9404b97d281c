package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/export"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/extract"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

func classCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "class <stories.json>",
		Short: "Extract a class diagram model from user stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBehavioral(args[0], export.DiagramClass, func(rt *runtime, stories []extract.Story) []*model.Element {
				return extract.NewClassExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
			})
		},
	}
}

func useCaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usecase <stories.json>",
		Short: "Extract a use case diagram model from user stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBehavioral(args[0], export.DiagramUseCase, func(rt *runtime, stories []extract.Story) []*model.Element {
				return extract.NewUseCaseExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
			})
		},
	}
}

func sequenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sequence <stories.json>",
		Short: "Extract a sequence diagram model from user stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBehavioral(args[0], export.DiagramSequence, func(rt *runtime, stories []extract.Story) []*model.Element {
				return extract.NewSequenceExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
			})
		},
	}
}

func activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity <stories.json>",
		Short: "Extract an activity diagram model from user stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBehavioral(args[0], export.DiagramActivity, func(rt *runtime, stories []extract.Story) []*model.Element {
				return extract.NewActivityExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
			})
		},
	}
}

// runBehavioral is the shared body of the story-driven commands
func runBehavioral(storiesPath string, d export.Diagram, run func(*runtime, []extract.Story) []*model.Element) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	stories, err := readStories(storiesPath)
	if err != nil {
		return err
	}

	elements := run(rt, stories)
	rt.log.Infow("extraction finished", "stories", len(stories), "elements", len(elements))
	if err := writeOutput(d, elements); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
