package settings

import (
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
)

// CustomCommand is a reusable prompt stored under customCommands.
type CustomCommand struct {
	Name           string
	Prompt         string
	Model          string
	IncludeContext bool
	Parameters     map[string]any
}

func (c CustomCommand) document() map[string]any {
	doc := map[string]any{
		"prompt":         c.Prompt,
		"includeContext": c.IncludeContext,
	}
	if c.Model != "" {
		doc["model"] = c.Model
	}
	if len(c.Parameters) > 0 {
		doc["parameters"] = deepCopyMap(c.Parameters)
	}
	return doc
}

func commandFromDocument(name string, v any) CustomCommand {
	m, _ := v.(map[string]any)
	c := CustomCommand{Name: name}
	c.Prompt, _ = m["prompt"].(string)
	c.Model, _ = m["model"].(string)
	c.IncludeContext, _ = m["includeContext"].(bool)
	if p, ok := m["parameters"].(map[string]any); ok {
		c.Parameters = p
	}
	return c
}

// Validate checks the fields a command needs.
func (c CustomCommand) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.NewValidationError("name", "command name is required"))
	}
	if strings.TrimSpace(c.Prompt) == "" {
		errs = append(errs, errors.NewValidationError("prompt", "command prompt is required"))
	}
	return errors.Join(errs...)
}

var commandTemplates = map[string]CustomCommand{
	"code-review": {
		Prompt:         "Review the code in the current file for potential issues, best practices, and improvements",
		IncludeContext: true,
		Parameters:     map[string]any{"focusAreas": []any{"security", "performance", "maintainability"}},
	},
	"explain-code": {
		Prompt:         "Explain the code in the current file in detail, including its purpose, structure, and key concepts",
		IncludeContext: true,
	},
	"generate-tests": {
		Prompt:         "Generate comprehensive unit tests for the code in the current file",
		IncludeContext: true,
		Parameters:     map[string]any{"framework": "auto-detect"},
	},
	"refactor": {
		Prompt:         "Suggest refactoring improvements for the code in the current file to improve readability and maintainability",
		IncludeContext: true,
	},
	"add-docs": {
		Prompt:         "Add comprehensive documentation comments to the code in the current file",
		IncludeContext: true,
		Parameters:     map[string]any{"style": "JSDoc"},
	},
	"find-bugs": {
		Prompt:         "Analyze the code for potential bugs, edge cases, and error handling issues",
		IncludeContext: true,
	},
	"optimize": {
		Prompt:         "Suggest performance optimizations for the code in the current file",
		IncludeContext: true,
	},
	"translate": {
		Prompt:         "Translate comments and documentation in the current file to the specified language",
		IncludeContext: true,
		Parameters:     map[string]any{"targetLanguage": "en"},
	},
}

// CommandTemplates returns the names of the built-in command templates.
func CommandTemplates() []string {
	return slices.Sorted(maps.Keys(commandTemplates))
}

// CommandTemplate returns a built-in template by name.
func CommandTemplate(name string) (CustomCommand, bool) {
	c, ok := commandTemplates[name]
	c.Name = name
	return c, ok
}

// Commands manages the customCommands map of a settings document.
type Commands struct {
	store *Store
}

// NewCommands wraps store.
func NewCommands(store *Store) *Commands {
	return &Commands{store: store}
}

// Add creates or replaces a command.
func (c *Commands) Add(cmd CustomCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	_, err := c.store.Update(Document{KeyCustomCommands: map[string]any{cmd.Name: cmd.document()}})
	return err
}

// Update replaces an existing command.
func (c *Commands) Update(cmd CustomCommand) error {
	if _, err := c.Get(cmd.Name); err != nil {
		return err
	}
	return c.Add(cmd)
}

// Remove deletes a command.
func (c *Commands) Remove(name string) error {
	return c.store.RemoveKey(KeyCustomCommands, name)
}

// Get returns one command.
func (c *Commands) Get(name string) (CustomCommand, error) {
	doc, err := c.store.Read()
	if err != nil {
		return CustomCommand{}, err
	}
	m, _ := doc[KeyCustomCommands].(map[string]any)
	v, ok := m[name]
	if !ok {
		return CustomCommand{}, errors.NotFoundf("custom command %q", name)
	}
	return commandFromDocument(name, v), nil
}

// List returns every command sorted by name. A missing document has none.
func (c *Commands) List() ([]CustomCommand, error) {
	doc, err := c.store.Read()
	if err != nil {
		return nil, err
	}
	m, _ := doc[KeyCustomCommands].(map[string]any)
	out := make([]CustomCommand, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		out = append(out, commandFromDocument(name, m[name]))
	}
	return out, nil
}

// InstallTemplates adds the named templates in a single write. Unknown
// names are returned and the rest are still installed.
func (c *Commands) InstallTemplates(names []string) (installed, unknown []string, err error) {
	entries := map[string]any{}
	for _, name := range names {
		tmpl, ok := CommandTemplate(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		entries[name] = tmpl.document()
		installed = append(installed, name)
	}
	if len(entries) == 0 {
		return nil, unknown, nil
	}
	if _, err := c.store.Update(Document{KeyCustomCommands: entries}); err != nil {
		return nil, unknown, err
	}
	return installed, unknown, nil
}
