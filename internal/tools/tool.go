// Package tools provides the analytics tool framework and implementations
// for the assistant.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Param describes one declared tool parameter.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Descriptor is the tool metadata exposed to clients.
type Descriptor struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  []Param `json:"parameters"`
	Category    string  `json:"category"`
}

// Chart is a renderable chart payload attached to a result.
type Chart struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Result is the structured outcome of a tool execution. Lookup misses and
// bad parameters are reported as Success=false, never as panics or errors.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Chart   *Chart `json:"chartData,omitempty"`
}

// Fail builds a failed result with a formatted message.
func Fail(format string, args ...any) *Result {
	return &Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// Tool is the interface that all analytics tools implement.
type Tool interface {
	// ID returns the tool identifier used in plans.
	ID() string
	// Describe returns the tool's metadata including declared parameters.
	Describe() Descriptor
	// Execute runs the tool. It must always return a result, using
	// Success=false for any failure.
	Execute(ctx context.Context, params map[string]any) *Result
}

// Registry manages tool registration and dispatch.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	id := tool.ID()
	if _, exists := r.tools[id]; !exists {
		r.order = append(r.order, id)
	}
	r.tools[id] = tool
}

// Get returns a tool by id.
func (r *Registry) Get(id string) (Tool, bool) {
	tool, ok := r.tools[id]
	return tool, ok
}

// Descriptors returns the metadata of all registered tools in
// registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id].Describe())
	}
	return out
}

// Execute dispatches to a tool by id. Unknown ids produce a failed result
// naming the id.
func (r *Registry) Execute(ctx context.Context, id string, params map[string]any) *Result {
	tool, ok := r.tools[id]
	if !ok {
		return Fail("Unknown tool: %s", id)
	}
	return tool.Execute(ctx, params)
}

var validate = validator.New()

// bindParams decodes a loose parameter map into a typed parameter struct
// and validates it against the struct's constraints. This is what enforces
// each tool's declared parameter list before execution.
func bindParams(params map[string]any, dst any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode parameters: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate parameters: %w", err)
	}
	return nil
}
