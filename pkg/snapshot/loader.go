// Package snapshot decodes tracker snapshots from JSON, YAML, TOML or
// obfuscated files into models.Snapshot.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/panbanda/sprintlens/internal/vcs"
	"github.com/panbanda/sprintlens/pkg/models"
	"github.com/pelletier/go-toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Loader reads snapshots. It is safe for concurrent use.
type Loader struct {
	loc      *time.Location
	codec    *Codec
	validate bool
	log      zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLocation sets the location for dates that carry no offset.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithCodec sets the codec used for obfuscated files.
func WithCodec(c *Codec) Option {
	return func(l *Loader) {
		if c != nil {
			l.codec = c
		}
	}
}

// WithValidation toggles schema validation.
func WithValidation(enabled bool) Option {
	return func(l *Loader) {
		l.validate = enabled
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a Loader. By default dates without an offset are read
// in time.Local, snapshots are schema validated and obfuscated files use
// DefaultObfuscationKey.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		loc:      time.Local,
		codec:    NewCodec(""),
		validate: true,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and decodes the snapshot at path.
func (l *Loader) Load(path string) (*models.Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap, err := l.LoadBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Debug().
		Str("path", path).
		Str("format", format.String()).
		Int("issues", len(snap.Issues)).
		Int("sprints", len(snap.Sprints)).
		Msg("snapshot loaded")
	return snap, nil
}

// LoadAtRevision decodes path as it was committed at rev in repo.
func (l *Loader) LoadAtRevision(repo vcs.Repository, rev, path string) (*models.Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := repo.ReadFile(rev, path)
	if err != nil {
		return nil, err
	}

	snap, err := l.LoadBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s@%s: %w", path, rev, err)
	}
	l.log.Debug().Str("path", path).Str("rev", rev).Msg("snapshot loaded from history")
	return snap, nil
}

// LoadBytes decodes data in the given format.
func (l *Loader) LoadBytes(data []byte, format Format) (*models.Snapshot, error) {
	normalized, err := l.Normalize(data, format)
	if err != nil {
		return nil, err
	}

	if l.validate {
		if err := Validate(normalized); err != nil {
			return nil, err
		}
	} else {
		l.log.Debug().Msg("schema validation disabled")
	}

	var snap models.Snapshot
	if err := json.Unmarshal(normalized, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if !l.validate {
		l.warnUnknownValues(&snap)
	}
	return &snap, nil
}

// warnUnknownValues logs enum values the schema would have rejected. They
// are kept as is: unknown priorities rank last and unknown statuses count
// as neither open nor done.
func (l *Loader) warnUnknownValues(snap *models.Snapshot) {
	for _, issue := range snap.Issues {
		if !issue.Priority.Valid() {
			l.log.Warn().Str("issue", issue.ID).Str("priority", string(issue.Priority)).Msg("unknown priority")
		}
		if !issue.Status.Valid() {
			l.log.Warn().Str("issue", issue.ID).Str("status", string(issue.Status)).Msg("unknown status")
		}
	}
	for _, sprint := range snap.Sprints {
		if !sprint.Status.Valid() {
			l.log.Warn().Str("sprint", sprint.ID).Str("status", string(sprint.Status)).Msg("unknown sprint status")
		}
	}
}

// Normalize converts data in any supported format into canonical snapshot
// JSON with every date rendered as RFC 3339.
func (l *Loader) Normalize(data []byte, format Format) ([]byte, error) {
	tree, err := l.parse(data, format)
	if err != nil {
		return nil, err
	}
	tree = normalizeDates(tree, "", l.loc)

	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return out, nil
}

func (l *Loader) parse(data []byte, format Format) (any, error) {
	var tree any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatObfuscated:
		plain, err := l.codec.Decode(data)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(plain, &tree); err != nil {
			return nil, fmt.Errorf("parse obfuscated json (wrong key?): %w", err)
		}
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		t, err := yamlTree(&doc)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		tree = t
	case FormatTOML:
		t, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		tree = t.ToMap()
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return tree, nil
}

// yamlTree converts a YAML node to plain Go values. Timestamps stay as
// their source text so date-only values get the loader's location instead
// of the UTC yaml.v3 would assign.
func yamlTree(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlTree(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlTree(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, len(n.Content))
		for i, child := range n.Content {
			v, err := yamlTree(child)
			if err != nil {
				return nil, err
			}
			s[i] = v
		}
		return s, nil
	case yaml.AliasNode:
		return yamlTree(n.Alias)
	}

	if n.ShortTag() == "!!timestamp" {
		return n.Value, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
