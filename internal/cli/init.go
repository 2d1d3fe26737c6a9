package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hobbyist/internal/api"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize hobbyist storage",
		Long: "Create the configuration and data directories, record any --backend or\n" +
			"--data-dir given on the command line in config.yaml, then attach and\n" +
			"detach the storage backend once.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	settings := map[string]string{}
	if a.flags.backend != "" {
		settings[cfgKeyBackend] = a.flags.backend
	}
	if a.flags.dataDir != "" {
		abs, err := filepath.Abs(a.flags.dataDir)
		if err != nil {
			return sysErr(err)
		}
		settings[cfgKeyDataDir] = abs
	}
	if len(settings) > 0 {
		path := filepath.Join(a.configDir, configFileExt)
		if err := updateConfigFile(path, settings); err != nil {
			return sysErr(fmt.Errorf("write config: %w", err))
		}
	}

	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	err = a.withService(cmd.Context(), func(context.Context, *api.Service) error { return nil })
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "hobbyist initialized (backend %s, data dir %s)\n", cfg.Backend, cfg.DataDir)
	return nil
}

// updateConfigFile sets top-level scalar keys in the YAML file at path,
// keeping the rest of the document and its comments.
func updateConfigFile(path string, values map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: top level is not a mapping", path)
	}

	for _, key := range slices.Sorted(maps.Keys(values)) {
		setScalar(root, key, values[key])
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}

func setScalar(mapping *yaml.Node, key, value string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Value: value}
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}
