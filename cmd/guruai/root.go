package main

import (
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/guruai/guruai/internal/capability"
	"github.com/guruai/guruai/internal/config"
	"github.com/guruai/guruai/internal/coordinator"
	"github.com/guruai/guruai/internal/culture"
	"github.com/guruai/guruai/internal/pipeline"
	"github.com/guruai/guruai/internal/session"
	"github.com/guruai/guruai/internal/specialist"
)

var rootCmd = &cobra.Command{
	Use:   "guruai",
	Short: "AI teaching assistant for multi-grade classrooms",
	Long: `GuruAI helps teachers in under-resourced, multi-grade classrooms:
photograph a textbook page and get differentiated worksheets per grade,
ask for hyper-local stories and examples, get simple explanations of
complex concepts, blackboard-ready visual aids, and lesson plans.

Requests are routed to one of five specialist agents; the worksheet
processor runs a multi-stage pipeline (extract, analyze, differentiate
per grade, assemble) against the configured model provider.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(worksheetCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// app bundles the wired system for one command invocation.
type app struct {
	cfg      *config.Config
	coord    *coordinator.Coordinator
	store    session.Store
	cultures *culture.Resolver
}

// buildApp loads configuration and wires the provider, pipeline,
// specialists, registry, store and coordinator.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	provider, err := capability.NewAnthropicProvider(capability.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
		CallTimeout:   cfg.Timeouts.Capability,
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}

	cultures, err := loadCultures(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading cultural profiles: %w", err)
	}

	ports := capability.Ports{
		Extractor:  provider,
		Analyzer:   provider,
		Generator:  provider,
		Translator: provider,
	}

	pipe, err := pipeline.New(pipeline.Config{
		Ports:         ports,
		Cultures:      cultures,
		MaxConcurrent: cfg.Pipeline.MaxConcurrent,
		RetryAttempts: cfg.Pipeline.RetryAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	registry := coordinator.NewRegistry()
	if err := registerSpecialists(registry, pipe, ports, cultures); err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	coord, err := coordinator.New(registry, store)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{cfg: cfg, coord: coord, store: store, cultures: cultures}, nil
}

// registerSpecialists creates the five agents and claims their skills.
func registerSpecialists(registry *coordinator.Registry, pipe *pipeline.Pipeline, ports capability.Ports, cultures *culture.Resolver) error {
	worksheet, err := specialist.NewWorksheetAgent(pipe)
	if err != nil {
		return err
	}
	content, err := specialist.NewContentAgent(ports.Generator, cultures)
	if err != nil {
		return err
	}
	knowledge, err := specialist.NewKnowledgeAgent(ports.Generator, ports.Translator)
	if err != nil {
		return err
	}
	visual, err := specialist.NewVisualAidAgent(ports.Generator)
	if err != nil {
		return err
	}
	assessment, err := specialist.NewAssessmentAgent(ports.Generator)
	if err != nil {
		return err
	}

	for _, a := range []specialist.Agent{worksheet, content, knowledge, visual, assessment} {
		if err := registry.Register(a); err != nil {
			return fmt.Errorf("registering %s: %w", a.ID(), err)
		}
	}
	return nil
}

// loadCultures builds the resolver, preferring a configured data path
// over the embedded table.
func loadCultures(cfg *config.Config) (*culture.Resolver, error) {
	if cfg.Culture.DataPath != "" {
		return culture.NewResolverFromFile(cfg.Culture.DataPath)
	}
	return culture.NewResolver()
}

// openStore opens the configured session backend.
func openStore(cfg *config.Config) (session.Store, error) {
	if cfg.Session.DBPath == ":memory:" {
		return session.NewMemoryStore(), nil
	}
	path := cfg.Session.DBPath
	if path == "" {
		path = session.DefaultDBPath()
	}
	return session.Open(path)
}

// close releases the app's resources.
func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}
