package snapshot

import (
	"fmt"

	"github.com/panbanda/sprintlens/pkg/models"
)

// SelectSprint returns the sprint with id, or the active sprint when id is
// empty.
func SelectSprint(snap *models.Snapshot, id string) (*models.Sprint, error) {
	if id == "" {
		if s := snap.ActiveSprint(); s != nil {
			return s, nil
		}
		return nil, ErrNoActiveSprint
	}
	if s, ok := snap.SprintByID(id); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSprint, id)
}
