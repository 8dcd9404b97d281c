package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/canon"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/export"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/extract"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/logging"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/model"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/nlp"
	"github.com/qamaruddin-qureshi/fyp-uml-diagram-generator/internal/tagger"
)

// Global flags shared by all subcommands
var (
	ConfigPath string
	ModelPath  string
	Format     string
	OutPath    string
	Verbose    bool
)

// RegisterCommands adds all subcommands to the root command
func RegisterCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(classCmd())
	rootCmd.AddCommand(useCaseCmd())
	rootCmd.AddCommand(sequenceCmd())
	rootCmd.AddCommand(activityCmd())
	rootCmd.AddCommand(componentCmd())
	rootCmd.AddCommand(deploymentCmd())
	rootCmd.AddCommand(watchCmd())
}

// runtime bundles the shared pipeline pieces one command run needs
type runtime struct {
	log    *zap.SugaredLogger
	parser *nlp.Parser
	tag    tagger.Tagger
	canon  *canon.Canonicalizer
}

// newRuntime builds the logger, parser, tagger and canonicalizer. A
// missing tagger model degrades to a blank tagger with a warning; a
// bad normalization config is a hard error.
func newRuntime() (*runtime, error) {
	log, err := logging.New(Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	c, err := canon.Load(ConfigPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load normalization config: %w", err)
	}

	tag, err := tagger.Load(ModelPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load tagger model: %w", err)
	}

	return &runtime{
		log:    log,
		parser: nlp.NewParser(log),
		tag:    tag,
		canon:  c,
	}, nil
}

// readStories decodes a {id, text} record list from a JSON file
func readStories(path string) ([]extract.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stories: %w", err)
	}
	var stories []extract.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("failed to parse stories: %w", err)
	}
	return stories, nil
}

// readNarration reads the narration from a file, or stdin for "-"
func readNarration(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read narration: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read narration: %w", err)
	}
	return string(data), nil
}

// writeOutput emits the element list in the selected format, to the
// output file or stdout
func writeOutput(d export.Diagram, elements []*model.Element) error {
	var w io.Writer = os.Stdout
	if OutPath != "" {
		f, err := os.Create(OutPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch Format {
	case "json":
		return export.WriteJSON(w, elements)
	case "puml":
		return export.WritePlantUML(w, d, elements)
	default:
		return fmt.Errorf("unknown format: %s", Format)
	}
}
