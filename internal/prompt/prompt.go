package prompt

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/flashmcp-go/internal/content"
	"github.com/wagiedev/flashmcp-go/internal/errors"
)

// Roles used by prompt messages.
const (
	RoleUser      mcp.Role = "user"
	RoleAssistant mcp.Role = "assistant"
)

// Func renders a prompt from its arguments.
//
// The result may be a string, a *mcp.PromptMessage, a slice of either, or
// any JSON-serializable value, which becomes a user message holding the
// indented JSON.
type Func func(ctx context.Context, args map[string]string) (any, error)

// Argument describes one prompt argument.
type Argument struct {
	Name        string
	Description string
	Required    bool
}

// Option configures a Prompt.
type Option func(*Prompt)

// WithArguments declares the prompt's arguments.
func WithArguments(args ...Argument) Option {
	return func(p *Prompt) {
		p.Arguments = append(p.Arguments, args...)
	}
}

// WithTitle sets a human-readable title.
func WithTitle(title string) Option {
	return func(p *Prompt) {
		p.Title = title
	}
}

// WithTags attaches tags.
func WithTags(tags ...string) Option {
	return func(p *Prompt) {
		p.Tags = append(p.Tags, tags...)
	}
}

// Prompt is a named, parameterized message template.
type Prompt struct {
	Name        string
	Title       string
	Description string
	Arguments   []Argument
	Tags        []string
	Fn          Func
}

// New creates a prompt.
func New(name, description string, fn Func, opts ...Option) (*Prompt, error) {
	if name == "" {
		return nil, stderrors.New("prompt name is required")
	}

	if fn == nil {
		return nil, fmt.Errorf("prompt %s has no function", name)
	}

	p := &Prompt{Name: name, Description: description, Fn: fn}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Key implements registry.Entity.
func (p *Prompt) Key() string {
	return p.Name
}

// WithPrefix implements registry.Entity. The copy is named "prefix/name".
func (p *Prompt) WithPrefix(prefix string) *Prompt {
	cp := *p
	cp.Name = prefix + "/" + p.Name
	cp.Arguments = append([]Argument(nil), p.Arguments...)
	cp.Tags = append([]string(nil), p.Tags...)

	return &cp
}

// Descriptor returns the protocol description of the prompt.
func (p *Prompt) Descriptor() *mcp.Prompt {
	args := make([]*mcp.PromptArgument, 0, len(p.Arguments))
	for _, a := range p.Arguments {
		args = append(args, &mcp.PromptArgument{
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
		})
	}

	return &mcp.Prompt{
		Name:        p.Name,
		Title:       p.Title,
		Description: p.Description,
		Arguments:   args,
	}
}

// Render checks required arguments, calls Fn and converts its result into
// messages. Missing arguments are reported as errors.ValidationError; any
// other failure as errors.PromptError.
func (p *Prompt) Render(ctx context.Context, args map[string]string) ([]*mcp.PromptMessage, error) {
	if missing := p.missingArguments(args); len(missing) > 0 {
		return nil, &errors.ValidationError{
			Kind: errors.KindPrompt,
			Name: p.Name,
			Err:  fmt.Errorf("missing required arguments: %v", missing),
		}
	}

	if args == nil {
		args = map[string]string{}
	}

	result, err := p.Fn(ctx, args)
	if err != nil {
		if errors.IsFlashMCPError(err) {
			return nil, err
		}

		return nil, &errors.PromptError{Name: p.Name, Err: err}
	}

	messages, err := toMessages(result)
	if err != nil {
		return nil, &errors.PromptError{Name: p.Name, Err: err}
	}

	return messages, nil
}

func (p *Prompt) missingArguments(args map[string]string) []string {
	var missing []string

	for _, a := range p.Arguments {
		if !a.Required {
			continue
		}

		if _, ok := args[a.Name]; !ok {
			missing = append(missing, a.Name)
		}
	}

	sort.Strings(missing)

	return missing
}

// UserMessage builds a user message from a string or protocol content.
func UserMessage(c any) *mcp.PromptMessage {
	return newMessage(RoleUser, c)
}

// AssistantMessage builds an assistant message from a string or protocol
// content.
func AssistantMessage(c any) *mcp.PromptMessage {
	return newMessage(RoleAssistant, c)
}

func newMessage(role mcp.Role, c any) *mcp.PromptMessage {
	switch x := c.(type) {
	case mcp.Content:
		return &mcp.PromptMessage{Role: role, Content: x}
	case string:
		return &mcp.PromptMessage{Role: role, Content: &mcp.TextContent{Text: x}}
	default:
		return &mcp.PromptMessage{Role: role, Content: &mcp.TextContent{Text: fmt.Sprint(x)}}
	}
}

func toMessages(result any) ([]*mcp.PromptMessage, error) {
	switch x := result.(type) {
	case nil:
		return []*mcp.PromptMessage{}, nil
	case []*mcp.PromptMessage:
		return x, nil
	case []string:
		messages := make([]*mcp.PromptMessage, 0, len(x))
		for _, s := range x {
			messages = append(messages, UserMessage(s))
		}

		return messages, nil
	}

	rv := reflect.ValueOf(result)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		messages := make([]*mcp.PromptMessage, 0, rv.Len())

		for i := range rv.Len() {
			msg, err := toMessage(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}

			messages = append(messages, msg)
		}

		return messages, nil
	}

	msg, err := toMessage(result)
	if err != nil {
		return nil, err
	}

	return []*mcp.PromptMessage{msg}, nil
}

func toMessage(v any) (*mcp.PromptMessage, error) {
	switch x := v.(type) {
	case *mcp.PromptMessage:
		if x == nil {
			return nil, stderrors.New("nil prompt message")
		}

		return x, nil
	case mcp.PromptMessage:
		return &x, nil
	case string:
		return UserMessage(x), nil
	case mcp.Content:
		return UserMessage(x), nil
	}

	text, err := content.MarshalText(v)
	if err != nil {
		return nil, fmt.Errorf("could not convert prompt result to message: %w", err)
	}

	return UserMessage(text), nil
}
