package memory

import (
	"maps"
	"sort"
	"sync"

	"github.com/aretw0/megaverse/pkg/domain"
)

// Entity is one placed object in the universe.
type Entity struct {
	Kind       domain.EntityKind `json:"kind"`
	Row        int               `json:"row"`
	Column     int               `json:"column"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type position struct {
	row, column int
}

// Universe holds the placed entities of one candidate.
// Safe for concurrent use.
type Universe struct {
	cells map[position]Entity
	mu    sync.RWMutex
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		cells: make(map[position]Entity),
	}
}

// Place stores an entity, replacing whatever occupied the position.
func (u *Universe) Place(kind domain.EntityKind, row, column int, attrs map[string]string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cells[position{row, column}] = Entity{
		Kind:       kind,
		Row:        row,
		Column:     column,
		Attributes: maps.Clone(attrs),
	}
}

// Remove deletes the entity at the position if it has the given kind.
// It reports whether something was removed; deleting nothing is not an error.
func (u *Universe) Remove(kind domain.EntityKind, row, column int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	pos := position{row, column}
	if e, ok := u.cells[pos]; ok && e.Kind == kind {
		delete(u.cells, pos)
		return true
	}
	return false
}

// Get returns the entity at the position.
func (u *Universe) Get(row, column int) (Entity, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	e, ok := u.cells[position{row, column}]
	return e, ok
}

// Len returns the number of placed entities.
func (u *Universe) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.cells)
}

// Snapshot returns a copy of all entities in row-major order.
func (u *Universe) Snapshot() []Entity {
	u.mu.RLock()
	defer u.mu.RUnlock()

	entities := make([]Entity, 0, len(u.cells))
	for _, e := range u.cells {
		e.Attributes = maps.Clone(e.Attributes)
		entities = append(entities, e)
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Row != entities[j].Row {
			return entities[i].Row < entities[j].Row
		}
		return entities[i].Column < entities[j].Column
	})
	return entities
}
