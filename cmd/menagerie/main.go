// Command menagerie talks to one of the configured personas.
//
// By default it starts an interactive session in the terminal. With -mcp it
// serves the persona's capabilities to MCP clients over stdio instead.
//
// Configuration is via environment variables, optionally read from a .env
// file (values already in the process environment win):
//
//	MENAGERIE_PERSONA         - Persona to use (default: Main Agent)
//	MENAGERIE_CATALOG         - YAML persona catalog (default: built-in personas)
//	MENAGERIE_LOG_LEVEL       - debug, info, warn or error (default: warn)
//	MENAGERIE_MAX_STEPS       - Max model calls per turn (default: 10)
//	MENAGERIE_HANDLER_TIMEOUT - Timeout per tool call (default: 60s)
//	OPENAI_API_KEY            - OpenAI API key
//	OPENAI_BASE_URL           - OpenAI-compatible endpoint (optional)
//	ANTHROPIC_API_KEY         - Anthropic API key
//	GOOGLE_API_KEY            - Google API key
//
// Usage:
//
//	menagerie -list
//	menagerie -persona "Strategy Agent"
//	menagerie -persona "Strategy Agent" -mcp
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zootherapy/menagerie/capability"
	"github.com/zootherapy/menagerie/client"
	"github.com/zootherapy/menagerie/mcp"
	"github.com/zootherapy/menagerie/persona"
	"github.com/zootherapy/menagerie/runner"
	"github.com/zootherapy/menagerie/tools/websearch"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "menagerie: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	persona string
	catalog string
	envFile string
	list    bool
	mcp     bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}
	set := flag.NewFlagSet("menagerie", flag.ContinueOnError)
	set.SetOutput(stderr)
	set.StringVar(&f.persona, "persona", "", "Persona to talk to (overrides MENAGERIE_PERSONA)")
	set.StringVar(&f.catalog, "catalog", "", "YAML persona catalog (overrides MENAGERIE_CATALOG)")
	set.StringVar(&f.envFile, "env", "", "Read configuration from this .env file (default: .env if present)")
	set.BoolVar(&f.list, "list", false, "List personas and exit")
	set.BoolVar(&f.mcp, "mcp", false, "Serve the persona's capabilities over MCP stdio")
	if err := set.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	env, err := loadEnvironment(f.envFile)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(env)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if f.persona != "" {
		cfg.Persona = f.persona
	}
	if f.catalog != "" {
		cfg.Catalog = f.catalog
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	registry := capability.NewRegistry(capability.WithLogger(logger))
	if err := websearch.Register(registry); err != nil {
		return err
	}

	catalog, err := buildCatalog(cfg, registry)
	if err != nil {
		return err
	}

	if f.list {
		return listPersonas(stdout, catalog, registry, env)
	}

	def, ok := catalog.Get(cfg.Persona)
	if !ok {
		return fmt.Errorf("unknown persona %q (available: %s)", cfg.Persona, strings.Join(catalog.Names(), ", "))
	}
	logger.Info("persona selected", "persona", def.Name(), "model", def.Model().String())

	for _, c := range def.Capabilities() {
		if missing, _ := registry.Missing(c.Name(), env); len(missing) > 0 {
			logger.Warn("capability is missing configuration", "capability", c.Name(), "keys", missing)
		}
	}

	if f.mcp {
		return mcp.ServeStdio(def, env,
			mcp.WithName("menagerie-"+strings.ToLower(strings.ReplaceAll(def.Name(), " ", "-"))),
			mcp.WithVersion(version),
			mcp.WithLogger(logger),
		)
	}

	chat, err := client.ForSelector(ctx, def.Model(), env)
	if err != nil {
		return err
	}

	r := runner.New(chat, def, env,
		runner.WithMaxSteps(cfg.MaxSteps),
		runner.WithHandlerTimeout(cfg.HandlerTimeout),
		runner.WithLogger(logger),
	)
	err = r.REPL(ctx, stdin, stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadEnvironment layers the process environment over a .env file. An
// explicitly named file must exist; the default .env is optional.
func loadEnvironment(path string) (capability.Environment, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	dotenv, err := capability.LoadDotEnv(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return capability.OSEnv{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return capability.Layered(capability.OSEnv{}, dotenv), nil
}

func buildCatalog(cfg *Config, registry *capability.Registry) (*persona.Catalog, error) {
	specs := persona.Builtin()
	if cfg.Catalog != "" {
		loaded, err := persona.LoadSpecsFile(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		specs = loaded
	}
	return persona.BuildCatalog(specs, registry)
}

func listPersonas(w io.Writer, catalog *persona.Catalog, registry *capability.Registry, env capability.Environment) error {
	for _, def := range catalog.Definitions() {
		fmt.Fprintf(w, "%s\t%s", def.Name(), def.Model())
		for _, name := range def.CapabilityNames() {
			fmt.Fprintf(w, "\t%s", name)
			if missing, _ := registry.Missing(name, env); len(missing) > 0 {
				fmt.Fprintf(w, " (needs %s)", strings.Join(missing, ", "))
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
