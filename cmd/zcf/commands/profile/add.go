package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/profile"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

var (
	addDef         profile.Definition
	addWireAPI     string
	addConfigs     string
	addConfigsFile string
)

func init() {
	f := addCmd.Flags()
	f.StringVar((*string)(&addDef.Type), "type", "", "auth type: api_key, auth_token, ccr_proxy")
	f.StringVar(&addDef.Key, "key", "", "API key or auth token")
	f.StringVar(&addDef.URL, "url", "", "base URL of the API")
	f.StringVar(&addDef.PrimaryModel, "model", "", "primary model")
	f.StringVar(&addDef.FastModel, "fast-model", "", "fast model (Claude Code only)")
	f.StringVar(&addDef.Provider, "provider", "", "provider preset (see zcf profile providers)")
	f.StringVar(&addWireAPI, "wire-api", "", "Codex wire API: responses or chat")
	f.BoolVar(&addDef.Default, "default", false, "make the profile current and apply it")
	f.StringVar(&addConfigs, "api-configs", "", "JSON array of profile definitions")
	f.StringVar(&addConfigsFile, "api-configs-file", "", "file with a JSON array of profile definitions")
	addCmd.MarkFlagsMutuallyExclusive("api-configs", "api-configs-file")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add one or more profiles",
	Long: `Add a profile from flags, or several from a JSON array of definitions.

A definition has the fields name, type, key, url, primaryModel,
fastModel, provider and default. With a provider preset the type, name,
URL and models default to the preset's values. Without one, --type is
required; a key is required unless the type is ccr_proxy.

The first profile added for a tool becomes current and is applied.
After that, adding a profile does not change the current profile unless
--default (or "default": true) is given.`,
	Example: `  # Custom endpoint
  zcf profile add work --type api_key --key sk-... --url https://api.example.com

  # Provider preset, activated immediately
  zcf profile add --provider kimi --key sk-... --tool gemini --default

  # Bulk import
  zcf profile add --api-configs '[{"provider":"302ai","key":"k1"},{"name":"b","type":"auth_token","key":"k2"}]'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func definitions(args []string) ([]profile.Definition, error) {
	switch {
	case addConfigs != "":
		return profile.ParseDefinitions([]byte(addConfigs))
	case addConfigsFile != "":
		data, err := fileutil.ReadFileWithLimit(addConfigsFile)
		if err != nil {
			return nil, errors.NewUserError(errors.Wrap(err, "reading API configs"), "Check the --api-configs-file path")
		}
		return profile.ParseDefinitions(data)
	}
	def := addDef
	if len(args) == 1 {
		def.Name = args[0]
	}
	return []profile.Definition{def}, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && (addConfigs != "" || addConfigsFile != "") {
		return errors.NewValidationError("name", "a name cannot be combined with --api-configs")
	}
	s, a, err := stores()
	if err != nil {
		return err
	}
	defs, err := definitions(args)
	if err != nil {
		return err
	}
	profiles, err := profile.FromDefinitions(s.Tool(), defs)
	if err != nil {
		return err
	}

	before, err := s.Load()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	var current, first string
	for i, p := range profiles {
		if addWireAPI != "" {
			p.WireAPI = addWireAPI
		}
		added, err := s.Add(p)
		if err != nil {
			return errors.Wrapf(err, "adding profile %q", p.Name)
		}
		fmt.Fprintf(w, "%s Added profile %s (%s)\n", green("✓"), added.Name, added.ID)
		if first == "" {
			first = added.ID
		}
		if defs[i].Default {
			current = added.ID
		}
	}
	if current == "" && before.CurrentID == "" {
		current = first
	}

	if current == "" {
		return nil
	}
	p, err := profile.SwitchAndApply(cmd.Context(), s, a, current)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Switched to %s\n", green("✓"), p.Name)
	return nil
}
