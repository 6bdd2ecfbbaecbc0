package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/parley-ai/parley/providers/ai"
)

// Catalog is the static registry of tools advertised to providers. It is
// populated once at startup and then shared read-only across every agent,
// including agents spawned for batch execution. The mutex exists only for
// the population phase; after that all access is reads.
type Catalog struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tools: make(map[string]GenericTool)}
}

// NewCatalogWithTools creates a catalog pre-populated with the given tools.
func NewCatalogWithTools(tools ...GenericTool) *Catalog {
	catalog := NewCatalog()
	catalog.Add(tools...)
	return catalog
}

// Add registers tools under their Info().Name. A tool with a duplicate name
// replaces the previous one.
func (c *Catalog) Add(tools ...GenericTool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range tools {
		c.tools[t.Info().Name] = t
	}
}

// Get retrieves a tool by name.
func (c *Catalog) Get(name string) (GenericTool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tools[name]
	return t, ok
}

// Size returns the number of registered tools.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Descriptions returns the full set of tool descriptors for inclusion in a
// provider request, sorted by name so rendered requests are deterministic.
func (c *Catalog) Descriptions() []ai.ToolDescription {
	c.mu.RLock()
	defer c.mu.RUnlock()

	descriptions := make([]ai.ToolDescription, 0, len(c.tools))
	for _, t := range c.tools {
		descriptions = append(descriptions, t.Info())
	}
	sort.Slice(descriptions, func(i, j int) bool {
		return descriptions[i].Name < descriptions[j].Name
	})
	return descriptions
}

// Execute runs the named tool against the given JSON arguments. A missing
// tool or a failed execution is reported as an error; the agent layer turns
// either into an ordinary tool message rather than failing the conversation.
func (c *Catalog) Execute(ctx context.Context, name, argumentsJSON string) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", fmt.Errorf("tool %q not found in catalog", name)
	}
	return t.Call(ctx, argumentsJSON)
}
