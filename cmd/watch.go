package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/arch"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/canon"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/export"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/extract"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
)

func watchCmd() *cobra.Command {
	var debounceMs int

	cmd := &cobra.Command{
		Use:   "watch <diagram> <input>",
		Short: "Re-run extraction when the input or the rule file changes",
		Long: `watch keeps one extraction loop alive: every change of the input
file or the normalization rule file re-runs the selected diagram
extraction. Diagram is one of class, usecase, sequence, activity,
component, deployment.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(export.Diagram(args[0]), args[1], time.Duration(debounceMs)*time.Millisecond)
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "debounce delay in milliseconds")
	return cmd
}

func runWatch(d export.Diagram, inputPath string, debounce time.Duration) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	rerun := func() {
		if err := extractOnce(rt, d, inputPath); err != nil {
			rt.log.Errorw("extraction failed", "error", err)
			return
		}
		fmt.Printf("updated %s model from %s\n", d, inputPath)
	}

	// config edits swap the rule set and re-extract
	configWatcher, err := canon.NewWatcher(rt.canon,
		canon.WithDebounceDelay(debounce),
		canon.WithOnReload(func() {
			rt.log.Infow("normalization rules reloaded", "path", ConfigPath)
			rerun()
		}),
		canon.WithOnError(func(err error) {
			rt.log.Errorw("config watch error", "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}
	configWatcher.Start()
	defer configWatcher.Stop()

	// input edits re-extract with the current rules
	inputWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create input watcher: %w", err)
	}
	defer inputWatcher.Close()
	if err := inputWatcher.Add(filepath.Dir(inputPath)); err != nil {
		return fmt.Errorf("failed to watch input directory: %w", err)
	}

	rerun()

	var debounceMu sync.Mutex
	var debounceTimer *time.Timer
	go func() {
		for {
			select {
			case event, ok := <-inputWatcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(inputPath) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounceMu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, rerun)
				debounceMu.Unlock()
			case err, ok := <-inputWatcher.Errors:
				if !ok {
					return
				}
				rt.log.Errorw("input watch error", "error", err)
			}
		}
	}()

	fmt.Printf("watching %s and %s, Ctrl+C to stop\n", inputPath, ConfigPath)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

// extractOnce runs one extraction of the selected diagram type
func extractOnce(rt *runtime, d export.Diagram, inputPath string) error {
	var elements []*model.Element
	switch d {
	case export.DiagramClass, export.DiagramUseCase, export.DiagramSequence, export.DiagramActivity:
		stories, err := readStories(inputPath)
		if err != nil {
			return err
		}
		switch d {
		case export.DiagramClass:
			elements = extract.NewClassExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
		case export.DiagramUseCase:
			elements = extract.NewUseCaseExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
		case export.DiagramSequence:
			elements = extract.NewSequenceExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
		case export.DiagramActivity:
			elements = extract.NewActivityExtractor(rt.parser, rt.tag, rt.log).Extract(stories)
		}
	case export.DiagramComponent, export.DiagramDeployment:
		narration, err := readNarration(inputPath)
		if err != nil {
			return err
		}
		if d == export.DiagramComponent {
			elements = arch.NewComponentExtractor(rt.parser, rt.tag, rt.canon, rt.log).Extract(narration)
		} else {
			elements = arch.NewDeploymentExtractor(rt.parser, rt.tag, rt.canon, rt.log).Extract(narration)
		}
	default:
		return fmt.Errorf("unknown diagram type: %s", d)
	}
	return writeOutput(d, elements)
}
