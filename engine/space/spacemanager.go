package space

import (
	"fmt"
	"sync"
)

var spaceManager = newSpaceManager()

type _SpaceManager struct {
	mu     sync.RWMutex
	spaces map[string]*Space
}

func newSpaceManager() *_SpaceManager {
	return &_SpaceManager{
		spaces: map[string]*Space{},
	}
}

func (sm *_SpaceManager) putSpace(space *Space) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.spaces[space.ID]; ok {
		return false
	}
	sm.spaces[space.ID] = space
	return true
}

func (sm *_SpaceManager) delSpace(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.spaces, id)
}

func (sm *_SpaceManager) getSpace(id string) *Space {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.spaces[id]
}

func (sm *_SpaceManager) all() []*Space {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	spaces := make([]*Space, 0, len(sm.spaces))
	for _, s := range sm.spaces {
		spaces = append(spaces, s)
	}
	return spaces
}

// CreateSpace 创建并登记 space
func CreateSpace(cfg Config, opts ...Option) (*Space, error) {
	s, err := NewSpace(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if !spaceManager.putSpace(s) {
		return nil, fmt.Errorf("space %s already exists", s.ID)
	}
	return s, nil
}

// GetSpace get space
func GetSpace(id string) *Space {
	return spaceManager.getSpace(id)
}

// Spaces every registered space
func Spaces() []*Space {
	return spaceManager.all()
}
