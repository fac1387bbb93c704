// Package cli implements the documind command line with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/documind/internal/core/ports/driving"
	"github.com/custodia-labs/documind/internal/logger"
)

// Requirement says how much of the application a command needs wired.
type Requirement string

const (
	// NeedSettings wires configuration only.
	NeedSettings Requirement = "settings"
	// NeedStore additionally opens the vector store and the loader.
	NeedStore Requirement = "store"
	// NeedAI additionally connects the embedding and LLM providers.
	NeedAI Requirement = "ai"
)

var requirementRank = map[Requirement]int{NeedSettings: 1, NeedStore: 2, NeedAI: 3}

// Includes reports whether r asks for at least what other does.
func (r Requirement) Includes(other Requirement) bool {
	return requirementRank[r] >= requirementRank[other]
}

// needsAnnotation is the cobra annotation key carrying a Requirement.
const needsAnnotation = "documind/needs"

// Options are passed to the service builder.
type Options struct {
	ConfigPath string
	Needs      Requirement

	// TopK overrides the configured retrieval depth when positive.
	TopK int
}

// PromptInitializer writes the default prompt templates.
type PromptInitializer interface {
	Init() error
	Dir() string
}

// Services is everything the commands call into. Fields a command's
// Requirement does not cover may be nil.
type Services struct {
	Ingest    driving.IngestService
	QA        driving.QAService
	Documents driving.DocumentService
	Settings  driving.SettingsService
	Prompts   PromptInitializer

	// ConfigPath is the settings file in use.
	ConfigPath string

	// Supports reports whether the loader can ingest a path.
	Supports func(path string) bool

	// Close releases the store and provider clients.
	Close func() error
}

// Builder wires services for a command.
type Builder func(ctx context.Context, opts Options) (*Services, error)

var (
	ingestService   driving.IngestService
	qaService       driving.QAService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	promptStore     PromptInitializer
	configPath      string
	supportsPath    func(path string) bool
	closeServices   func() error

	builder Builder
	version = "dev"
)

// Global flags.
var (
	verboseFlag bool
	configFlag  string
	formatFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "documind",
	Short: "Ingest documents and ask questions about them",
	Long: `DocuMind ingests PDF, Word, image and text files into a local vector
store, summarises each document, and answers questions with citations to
file and page.

Embeddings and answers come from a configurable provider (Ollama by default).
Run 'documind config init' to write a configuration file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print progress details to stderr")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default ~/.documind/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", formatText, "Output format: text, json or yaml")
}

// SetBuilder registers the function that wires services for commands.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version reported by `documind version`.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command and releases whatever it wired.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, teardown())
}

// requires marks cmd as needing services wired up to level.
func requires(cmd *cobra.Command, level Requirement) {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[needsAnnotation] = string(level)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	if err := validateFormat(formatFlag); err != nil {
		return err
	}

	needs := Requirement(cmd.Annotations[needsAnnotation])
	if needs == "" || builder == nil {
		return nil
	}

	opts := Options{ConfigPath: configFlag, Needs: needs}
	if f := cmd.Flags().Lookup("top-k"); f != nil && f.Changed {
		opts.TopK = askTopK
	}

	svc, err := builder(cmd.Context(), opts)
	if err != nil {
		return err
	}
	useServices(svc)
	return nil
}

func teardown() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	if err != nil {
		return fmt.Errorf("closing services: %w", err)
	}
	return nil
}

// useServices installs svc as the package-level services.
func useServices(svc *Services) {
	ingestService = svc.Ingest
	qaService = svc.QA
	documentService = svc.Documents
	settingsService = svc.Settings
	promptStore = svc.Prompts
	configPath = svc.ConfigPath
	supportsPath = svc.Supports
	closeServices = svc.Close
}

var errNotConfigured = errors.New("not configured")

// notConfigured reports a missing service the way every command does.
func notConfigured(name string) error {
	return fmt.Errorf("%s service %w", name, errNotConfigured)
}
