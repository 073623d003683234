package mcpserver

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/*.md
var promptFiles embed.FS

var placeholder = regexp.MustCompile(`\{\{\s*([a-z_]+)\s*\}\}`)

// promptArg declares one argument a prompt template accepts.
type promptArg struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default"`
}

// promptTemplate is a parsed prompts/*.md file.
type promptTemplate struct {
	Name        string
	Description string      `yaml:"description"`
	Arguments   []promptArg `yaml:"arguments"`
	Body        string      `yaml:"-"`
}

// parsePrompt splits YAML frontmatter from the body. Content without
// well-formed frontmatter is returned whole as the body.
func parsePrompt(name string, content []byte) promptTemplate {
	tmpl := promptTemplate{Name: name, Body: string(content)}
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return tmpl
	}
	rest := content[4:]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end == -1 {
		return tmpl
	}

	var fm promptTemplate
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return tmpl
	}
	fm.Name = name
	fm.Body = strings.TrimPrefix(string(rest[end+5:]), "\n")
	return fm
}

func (p promptTemplate) mcpPrompt() *mcp.Prompt {
	prompt := &mcp.Prompt{Name: p.Name, Description: p.Description}
	for _, a := range p.Arguments {
		prompt.Arguments = append(prompt.Arguments, &mcp.PromptArgument{
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
		})
	}
	return prompt
}

// render fills {{name}} placeholders. Declared arguments take the caller's
// value or their default; {{snapshot}} falls back to the server's snapshot.
// Unknown placeholders are left as written.
func (p promptTemplate) render(args map[string]string, snapshot string) (string, error) {
	values := map[string]string{"snapshot": snapshot}
	var missing []string
	for _, a := range p.Arguments {
		v := strings.TrimSpace(args[a.Name])
		switch {
		case v != "":
			values[a.Name] = v
		case a.Required:
			missing = append(missing, a.Name)
		default:
			values[a.Name] = a.Default
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("prompt %s: missing required argument(s): %s", p.Name, strings.Join(missing, ", "))
	}

	return placeholder.ReplaceAllStringFunc(p.Body, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	}), nil
}

// registerPrompts adds every embedded prompts/*.md file under its base name.
func (s *Server) registerPrompts() {
	entries, err := promptFiles.ReadDir("prompts")
	if err != nil {
		s.log.Error().Err(err).Msg("read embedded prompts")
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		content, err := promptFiles.ReadFile(path.Join("prompts", entry.Name()))
		if err != nil {
			s.log.Warn().Err(err).Str("prompt", name).Msg("skip prompt")
			continue
		}
		tmpl := parsePrompt(name, content)
		s.server.AddPrompt(tmpl.mcpPrompt(), s.promptHandler(tmpl))
	}
}

func (s *Server) promptHandler(tmpl promptTemplate) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		var args map[string]string
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		text, err := tmpl.render(args, s.snapshot)
		if err != nil {
			return nil, err
		}
		s.log.Debug().Str("prompt", tmpl.Name).Int("args", len(args)).Msg("prompt rendered")
		return &mcp.GetPromptResult{
			Description: tmpl.Description,
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: text}},
			},
		}, nil
	}
}
