package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/theapemachine/mcp-server-uniprot/core/middleware"
)

// Registry maps tool names to tools. It is built at startup and handed to the
// transport layer with Attach.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds tools under the names declared in their schemas.
func (r *Registry) Register(tools ...Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range tools {
		if tool == nil {
			return errors.New("cannot register nil tool")
		}

		name := tool.Handle().Name
		if name == "" {
			return errors.New("cannot register tool without a name")
		}

		if _, exists := r.tools[name]; exists {
			return fmt.Errorf("tool %q already registered", name)
		}

		r.tools[name] = tool
	}

	return nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Attach adds every registered tool to the MCP server, wrapping each handler in mws.
func (r *Registry) Attach(mcpServer *server.MCPServer, mws ...middleware.Middleware) {
	for _, name := range r.Names() {
		tool, _ := r.Get(name)
		handler := middleware.Chain(tool.Handler, mws...)
		mcpServer.AddTool(tool.Handle(), server.ToolHandlerFunc(handler))
	}
}
