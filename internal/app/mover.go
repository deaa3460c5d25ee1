package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
)

// maxCollisions bounds the " (n)" search so a broken filesystem cannot spin
// forever.
const maxCollisions = 10000

// Mover places files at their planned destination under a free name.
type Mover struct {
	FS FileSystem
	// DryRun resolves names without touching the filesystem. Names handed
	// out during the run are remembered so later collisions still count.
	DryRun   bool
	reserved map[string]bool
}

// FinalPath returns the first free "<base>[ (n)]<ext>" path in plan.Dir.
func (m *Mover) FinalPath(plan domain.DestinationPlan, ext string) (string, error) {
	for n := 0; n < maxCollisions; n++ {
		candidate := filepath.Join(plan.Dir, plan.CandidateName(ext, n))
		if m.reserved[candidate] {
			continue
		}
		exists, err := m.FS.Exists(candidate)
		if err != nil {
			return "", appErrors.Wrap(appErrors.IOFailure, "stat", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", appErrors.Wrap(appErrors.IOFailure, "resolve", plan.Dir,
		fmt.Errorf("no free name for %q after %d attempts", plan.BaseName, maxCollisions))
}

// Move creates plan.Dir and renames sourcePath to its final collision-free
// name in one step. The original extension is kept verbatim.
func (m *Mover) Move(ctx context.Context, sourcePath string, plan domain.DestinationPlan) (string, error) {
	if m.FS == nil {
		return "", errors.New("mover requires FS")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if !m.DryRun {
		if err := m.FS.MkdirAll(plan.Dir, 0o755); err != nil {
			return "", appErrors.Wrap(appErrors.IOFailure, "mkdir", plan.Dir, err)
		}
	}

	target, err := m.FinalPath(plan, filepath.Ext(sourcePath))
	if err != nil {
		return "", err
	}

	if m.DryRun {
		if m.reserved == nil {
			m.reserved = map[string]bool{}
		}
		m.reserved[target] = true
		return target, nil
	}

	if err := m.FS.Rename(sourcePath, target); err != nil {
		return "", appErrors.Wrap(appErrors.IOFailure, "rename", sourcePath, err)
	}
	return target, nil
}
