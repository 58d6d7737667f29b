package nussinov

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownStrategy is returned by FolderFactory.Get for unregistered names.
var ErrUnknownStrategy = errors.New("nussinov: unknown folding strategy")

// FolderFactory looks folders up by short name.
type FolderFactory interface {
	Get(name string) (Folder, error)
	List() []string
	Register(name string, f Folder) error
	GetAll() map[string]Folder
}

// DefaultFactory is a FolderFactory safe for concurrent use.
type DefaultFactory struct {
	mu      sync.RWMutex
	folders map[string]Folder
}

// NewDefaultFactory returns a factory holding "sequential" and "diagonal".
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{folders: make(map[string]Folder)}
	f.folders["sequential"] = NewFolder(SequentialFill{})
	f.folders["diagonal"] = NewFolder(DiagonalFill{})
	return f
}

// Get returns the folder registered under name.
func (f *DefaultFactory) Get(name string) (Folder, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	folder, ok := f.folders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return folder, nil
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.folders))
}

// Register adds or replaces a folder.
func (f *DefaultFactory) Register(name string, folder Folder) error {
	if name == "" || folder == nil {
		return fmt.Errorf("%w: empty name or nil folder", ErrInvalidInput)
	}
	f.mu.Lock()
	f.folders[name] = folder
	f.mu.Unlock()
	return nil
}

// GetAll returns a copy of the registry.
func (f *DefaultFactory) GetAll() map[string]Folder {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return maps.Clone(f.folders)
}
