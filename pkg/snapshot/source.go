package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/panbanda/sprintlens/internal/vcs"
	"github.com/panbanda/sprintlens/pkg/models"
)

// Source names a snapshot file, optionally as committed at a git revision.
type Source struct {
	Path     string `json:"path" toon:"path"`
	Revision string `json:"revision,omitempty" toon:"revision,omitempty"`
}

func (s Source) String() string {
	if s.Revision == "" {
		return s.Path
	}
	return s.Path + "@" + s.Revision
}

// Read returns the raw bytes of the source. With a revision the enclosing
// git repository is found through opener.
func (s Source) Read(opener vcs.Opener) ([]byte, error) {
	if s.Revision == "" {
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		return data, nil
	}
	if opener == nil {
		opener = vcs.NewGitOpener()
	}
	repo, err := opener.PlainOpenWithDetect(filepath.Dir(s.Path))
	if err != nil {
		return nil, err
	}
	return repo.ReadFile(s.Revision, s.Path)
}

// Open reads and decodes src, returning the snapshot and the raw bytes it
// was decoded from.
func (l *Loader) Open(opener vcs.Opener, src Source) (*models.Snapshot, []byte, error) {
	format, err := FormatFromPath(src.Path)
	if err != nil {
		return nil, nil, err
	}
	data, err := src.Read(opener)
	if err != nil {
		return nil, nil, err
	}
	snap, err := l.LoadBytes(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", src, err)
	}
	l.log.Debug().Str("source", src.String()).Int("issues", len(snap.Issues)).Msg("snapshot opened")
	return snap, data, nil
}
