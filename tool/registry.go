package tool

import (
	"context"
	"encoding/json"
	"sync"

	ai "github.com/striderlabs/strider"
)

type binding struct {
	tool    ai.Tool
	handler Handler
}

// Registry holds tool definitions bound to their handlers. Registration
// order is preserved so the schema and prompt views are deterministic
// across runs. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]binding
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]binding),
	}
}

// Register binds a tool to its handler. A duplicate name is rejected
// with *ErrToolAlreadyRegistered; replacing a binding on purpose goes
// through Override instead.
func (r *Registry) Register(tool ai.Tool, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.tools[tool.Name]; taken {
		return &ErrToolAlreadyRegistered{Name: tool.Name}
	}

	r.tools[tool.Name] = binding{tool: tool, handler: handler}
	r.order = append(r.order, tool.Name)
	return nil
}

// MustRegister is Register, panicking on error.
func (r *Registry) MustRegister(tool ai.Tool, handler Handler) {
	if err := r.Register(tool, handler); err != nil {
		panic(err)
	}
}

// Override binds a tool, replacing any existing binding for its name. A
// replaced tool keeps its original position in registration order; a new
// name is appended like Register.
func (r *Registry) Override(tool ai.Tool, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.tools[tool.Name]; !taken {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = binding{tool: tool, handler: handler}
}

// Unregister removes a binding; unknown names are a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[name]; !ok {
		return
	}
	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Registry) lookup(name string) (binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.tools[name]
	return b, ok
}

// Get returns the handler bound to a name.
func (r *Registry) Get(name string) (Handler, bool) {
	b, ok := r.lookup(name)
	return b.handler, ok
}

// GetTool returns the tool definition bound to a name.
func (r *Registry) GetTool(name string) (ai.Tool, bool) {
	b, ok := r.lookup(name)
	return b.tool, ok
}

// Tools returns every tool definition in registration order. This is the
// machine-schema view handed to a ChatProvider, which renders it into the
// vendor's own tool dialect.
func (r *Registry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name].tool)
	}
	return tools
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// RegisterFunc registers a typed handler; the argument schema is derived
// from the struct tags of T and the call's JSON arguments are unmarshaled
// into T before the handler runs.
//
//	type searchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	tool.RegisterFunc(registry, "search", "Search the web",
//	    func(ctx context.Context, args searchArgs) (string, error) {
//	        return doSearch(args.Query), nil
//	    },
//	)
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	schema, err := ai.SchemaFor[T]()
	if err != nil {
		return err
	}

	return r.Register(ai.Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}, bindHandler(fn))
}

// MustRegisterFunc is RegisterFunc, panicking on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}

func bindHandler[T any](fn TypedHandler[T]) Handler {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args T
		// Empty arguments run the handler on the zero value of T.
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return "", err
			}
		}
		return fn(ctx, args)
	}
}

// Execute runs the handler for a call and packages the outcome as a
// ToolResult. An unregistered name returns *ErrToolNotFound; a handler
// error is folded into an error-flagged result so the model can read the
// failure and recover.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	b, ok := r.lookup(call.Name)
	if !ok {
		return ai.ToolResult{}, &ErrToolNotFound{Name: call.Name}
	}

	content, err := b.handler(ctx, call)
	if err != nil {
		return ai.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
		}, nil
	}

	return ai.ToolResult{
		ToolCallID: call.ID,
		Content:    content,
	}, nil
}

// Registration pairs a tool with its handler for bulk registration.
type Registration struct {
	Tool    ai.Tool
	Handler Handler
}

// Func builds a Registration from a typed handler, deriving the schema
// from T. Panics if schema generation fails.
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("weather", "Get weather", func(ctx context.Context, args weatherArgs) (string, error) {
//	        return getWeather(args.Location), nil
//	    }),
//	)
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	return Registration{
		Tool: ai.Tool{
			Name:        name,
			Description: description,
			Parameters:  ai.MustSchemaFor[T](),
		},
		Handler: bindHandler(fn),
	}
}

// FuncR is Func plus a return-type tag for the prompt-facing listing
// produced by HumanText.
func FuncR[T any](name, description, returns string, fn TypedHandler[T]) Registration {
	reg := Func(name, description, fn)
	reg.Tool.Returns = returns
	return reg
}

// WithTool builds a Registration from a pre-built tool definition.
func WithTool(t ai.Tool, h Handler) Registration {
	return Registration{Tool: t, Handler: h}
}

// Add registers the given registrations, panicking on a duplicate name.
// Returns the registry for chaining.
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		r.MustRegister(reg.Tool, reg.Handler)
	}
	return r
}

// RegisterAll bulk-registers a toolkit's registrations, stopping at the
// first error.
func RegisterAll(r *Registry, regs []Registration) error {
	for _, reg := range regs {
		if err := r.Register(reg.Tool, reg.Handler); err != nil {
			return err
		}
	}
	return nil
}

// MustRegisterAll is RegisterAll, panicking on error.
func MustRegisterAll(r *Registry, regs []Registration) {
	if err := RegisterAll(r, regs); err != nil {
		panic(err)
	}
}
