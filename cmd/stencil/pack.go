package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jward/stencil/internal/metadata"
)

var flagPackOutput string

var packCmd = &cobra.Command{
	Use:   "pack <module.yaml>",
	Short: "Build a metadata container from a YAML module description",
	Long:  "Packs a YAML description of a module's identity and types into a SQLite metadata container that emit can resolve.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPack,
}

func init() {
	packCmd.Flags().StringVarP(&flagPackOutput, "output", "o", "", "container path (default: <name>.dll in the working directory)")
}

// Module description YAML shapes.

type moduleDesc struct {
	Name           string     `yaml:"name"`
	Version        string     `yaml:"version"`
	PublicKeyToken string     `yaml:"publicKeyToken"`
	Types          []typeDesc `yaml:"types"`
}

type typeDesc struct {
	Namespace  string          `yaml:"namespace"`
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind"`
	Visibility string          `yaml:"visibility"`
	Modifiers  []string        `yaml:"modifiers"`
	Base       string          `yaml:"base"`
	Interfaces []string        `yaml:"interfaces"`
	TypeParams []typeParamDesc `yaml:"typeParams"`
	Attributes []string        `yaml:"attributes"`
	Members    []memberDesc    `yaml:"members"`
	Nested     []typeDesc      `yaml:"nested"`
}

type typeParamDesc struct {
	Name        string   `yaml:"name"`
	Constraints []string `yaml:"constraints"`
}

type memberDesc struct {
	Kind      string      `yaml:"kind"`
	Name      string      `yaml:"name"`
	Returns   string      `yaml:"returns"`
	Modifiers []string    `yaml:"modifiers"`
	Params    []paramDesc `yaml:"params"`
	Getter    bool        `yaml:"getter"`
	Setter    bool        `yaml:"setter"`
	Const     string      `yaml:"const"`
}

type paramDesc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

func runPack(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read description: %w", err)
	}
	var desc moduleDesc
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("parse description %s: %w", args[0], err)
	}
	mod, err := descToModule(desc)
	if err != nil {
		return fmt.Errorf("description %s: %w", args[0], err)
	}

	out := flagPackOutput
	if out == "" {
		out = mod.Identity.Name + metadata.FileExt
	}
	if err := metadata.WriteContainer(out, mod); err != nil {
		return err
	}
	logger.Info("packed module", "name", mod.Identity.Name, "types", len(mod.Types), "path", out)
	return nil
}

func descToModule(desc moduleDesc) (*metadata.Module, error) {
	if desc.Name == "" {
		return nil, fmt.Errorf("missing module name")
	}
	id := metadata.Identity{Name: desc.Name}
	if desc.Version != "" {
		v, err := metadata.ParseVersion(desc.Version)
		if err != nil {
			return nil, err
		}
		id.Version = v
	}
	if desc.PublicKeyToken != "" {
		key, err := decodeKeyToken(desc.PublicKeyToken)
		if err != nil {
			return nil, err
		}
		id.PublicKeyToken = key
	}

	mod := &metadata.Module{Identity: id}
	for _, t := range desc.Types {
		mod.Types = append(mod.Types, descToType(t))
	}
	return mod, nil
}

func descToType(desc typeDesc) *metadata.TypeSymbol {
	t := &metadata.TypeSymbol{
		Namespace:  desc.Namespace,
		Name:       desc.Name,
		Kind:       desc.Kind,
		Visibility: desc.Visibility,
		Modifiers:  desc.Modifiers,
		BaseType:   desc.Base,
		Interfaces: desc.Interfaces,
		Attributes: desc.Attributes,
	}
	for _, tp := range desc.TypeParams {
		t.TypeParams = append(t.TypeParams, metadata.TypeParam{
			Name:        tp.Name,
			Constraints: tp.Constraints,
		})
	}
	for _, m := range desc.Members {
		member := metadata.Member{
			Kind:       m.Kind,
			Name:       m.Name,
			ReturnType: m.Returns,
			Modifiers:  m.Modifiers,
			HasGetter:  m.Getter,
			HasSetter:  m.Setter,
			ConstValue: m.Const,
		}
		for _, p := range m.Params {
			member.Params = append(member.Params, metadata.Param{Name: p.Name, Type: p.Type})
		}
		t.Members = append(t.Members, member)
	}
	for _, n := range desc.Nested {
		t.Nested = append(t.Nested, descToType(n))
	}
	return t
}

// decodeKeyToken decodes a lowercase hex public key token.
func decodeKeyToken(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("public key token %q: %w", s, err)
	}
	return key, nil
}
