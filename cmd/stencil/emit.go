package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jward/stencil"
	"github.com/jward/stencil/internal/script"
)

var (
	flagSearchPath string
	flagManifest   string
	flagOutput     string
	flagFilter     string
	flagVerify     bool
)

var emitCmd = &cobra.Command{
	Use:   "emit [name[@version]...]",
	Short: "Resolve modules and emit their canonical declaration surface",
	Long:  "Resolves the requested module identities against the search path, walks their externally visible types, and writes minimal body-free declarations to the output sink (stdout by default).",
	RunE:  runEmit,
}

func init() {
	emitCmd.Flags().StringVar(&flagSearchPath, "search-path", "", "comma/semicolon-delimited directories or container files (also $STENCIL_SEARCH_PATH)")
	emitCmd.Flags().StringVar(&flagManifest, "manifest", "", "YAML manifest listing the module identities to resolve")
	emitCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	emitCmd.Flags().StringVar(&flagFilter, "filter", "", "Risor script filtering which types are emitted")
	emitCmd.Flags().BoolVar(&flagVerify, "verify", false, "parse the emitted source and fail on syntax errors")

	viper.SetEnvPrefix("STENCIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlag("search-path", emitCmd.Flags().Lookup("search-path"))
}

// identityManifest is the YAML shape accepted by --manifest.
type identityManifest struct {
	Modules []struct {
		Name           string `yaml:"name"`
		Version        string `yaml:"version"`
		PublicKeyToken string `yaml:"publicKeyToken"`
	} `yaml:"modules"`
}

func runEmit(cmd *cobra.Command, args []string) error {
	identities, err := collectIdentities(args)
	if err != nil {
		return err
	}
	if len(identities) == 0 {
		return fmt.Errorf("no modules requested: pass name specs or --manifest")
	}

	opts := []stencil.Option{
		stencil.WithLogger(logger),
		stencil.WithVerify(flagVerify),
	}
	if flagFilter != "" {
		filter, err := script.LoadFilter(flagFilter)
		if err != nil {
			return err
		}
		opts = append(opts, stencil.WithFilter(filter))
	}

	engine := stencil.New(opts...)

	searchPath := viper.GetString("search-path")
	if searchPath == "" {
		searchPath = "."
	}
	engine.AddSearchPath(searchPath)

	modules := engine.Resolve(identities)

	// Malformed containers poison downstream symbol resolution: abort
	// before writing anything.
	if bad, diags := engine.HasDiagnostics(); bad {
		for _, d := range diags {
			logger.Error("container diagnostic", "path", d.Path, "error", d.Message)
		}
		return fmt.Errorf("%d container(s) failed to load", len(diags))
	}
	if len(modules) == 0 {
		return fmt.Errorf("none of the %d requested module(s) resolved", len(identities))
	}

	sink, closeSink, err := openSink(flagOutput)
	if err != nil {
		return err
	}
	defer closeSink()

	return engine.Emit(cmd.Context(), sink, modules)
}

// collectIdentities merges positional name specs with the manifest.
func collectIdentities(args []string) ([]stencil.Identity, error) {
	var identities []stencil.Identity
	for _, spec := range args {
		id, err := stencil.ParseIdentity(spec)
		if err != nil {
			return nil, err
		}
		identities = append(identities, id)
	}
	if flagManifest == "" {
		return identities, nil
	}

	data, err := os.ReadFile(flagManifest)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var manifest identityManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", flagManifest, err)
	}
	for _, m := range manifest.Modules {
		id := stencil.Identity{Name: m.Name}
		if m.Version != "" {
			v, err := stencil.ParseVersion(m.Version)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: module %s: %w", flagManifest, m.Name, err)
			}
			id.Version = v
		}
		if m.PublicKeyToken != "" {
			key, err := decodeKeyToken(m.PublicKeyToken)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: module %s: %w", flagManifest, m.Name, err)
			}
			id.PublicKeyToken = key
		}
		identities = append(identities, id)
	}
	return identities, nil
}

// openSink returns the output writer and a close function that runs on
// every exit path. Stdout is never closed.
func openSink(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
