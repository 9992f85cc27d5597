package mcp

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/mcp"
)

var (
	addURL       string
	addEnv       []string
	addTransport string
	addHeaders   []string
	addForce     bool
)

func init() {
	addCmd.Flags().StringVar(&addURL, "url", "",
		"remote server endpoint")
	addCmd.Flags().StringSliceVar(&addEnv, "env", nil,
		"environment variables in KEY=VALUE format (repeatable)")
	addCmd.Flags().StringVar(&addTransport, "transport", "",
		"explicit transport type: stdio, sse, http")
	addCmd.Flags().StringSliceVar(&addHeaders, "headers", nil,
		"HTTP headers in KEY=VALUE format (repeatable)")
	addCmd.Flags().BoolVarP(&addForce, "force", "f", false,
		"overwrite if server already exists")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name> [command] [args...]",
	Short: "Add an MCP server configuration",
	Long: `Add an MCP server configuration to the selected tool.

For local stdio servers, provide a command and optional arguments after
-- so their flags are not read by zcf. For remote servers, use the --url flag.`,
	Example: `  # Add a local stdio server
  zcf mcp add github -- npx -y @modelcontextprotocol/server-github

  # Add a remote server with headers
  zcf mcp add api --url=https://api.example.com/mcp --transport http --headers "Authorization=Bearer token"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	env, err := parseKeyValueSlice(addEnv, "--env")
	if err != nil {
		return err
	}
	headers, err := parseKeyValueSlice(addHeaders, "--headers")
	if err != nil {
		return err
	}

	s := &mcp.Server{
		Name:      args[0],
		URL:       addURL,
		Transport: addTransport,
		Env:       env,
		Headers:   headers,
	}
	if len(args) > 1 {
		s.Command = args[1]
		s.Args = args[2:]
	}
	if s.Command != "" && s.URL != "" {
		return errors.NewValidationError("url", "cannot specify both command and --url")
	}
	if s.Transport == "" {
		s.Transport = s.EffectiveTransport()
	}

	reg, err := registry()
	if err != nil {
		return err
	}
	if !addForce {
		if _, err := reg.Get(s.Name); err == nil {
			return errors.NewUserError(errors.Newf("server %q already exists", s.Name), "Use --force to overwrite it")
		}
	}
	if err := reg.Add(s); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s Added MCP server %s\n", green("✓"), s.Name)
	for _, issue := range mcp.Warnings(s) {
		fmt.Fprintf(w, "  %s %s\n", yellow("!"), issue)
	}
	return nil
}

// parseKeyValueSlice parses KEY=VALUE entries into a map.
func parseKeyValueSlice(entries []string, flagName string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			return nil, errors.NewValidationError(flagName, "invalid format %q: expected KEY=VALUE", entry)
		}
		result[key] = value
	}
	return result, nil
}
