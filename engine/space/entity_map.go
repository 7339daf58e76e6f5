package space

import "bytes"

// Map is the data structure for maintaining entity IDs to entities
type Map map[string]*Entity

// Add adds a new entity to Map
func (em Map) Add(entity *Entity) {
	em[entity.ID] = entity
}

// Del deletes an entity from Map
func (em Map) Del(id string) {
	delete(em, id)
}

// Get returns the Entity of specified entity ID in Map
func (em Map) Get(id string) *Entity {
	return em[id]
}

// Values return values of the Map in a slice
func (em Map) Values() []*Entity {
	vals := make([]*Entity, 0, len(em))
	for _, e := range em {
		vals = append(vals, e)
	}
	return vals
}

// Filter filter map
func (em Map) Filter(filter func(*Entity) bool) Map {
	r := Map{}
	for _, e := range em {
		if filter(e) {
			r.Add(e)
		}
	}
	return r
}

// Set is the data structure for a set of entities
type Set map[*Entity]struct{}

// Add adds an entity to the Set
func (es Set) Add(entity *Entity) {
	es[entity] = struct{}{}
}

// Del deletes an entity from the Set
func (es Set) Del(entity *Entity) {
	delete(es, entity)
}

// Contains returns if the entity is in the Set
func (es Set) Contains(entity *Entity) bool {
	_, ok := es[entity]
	return ok
}

// IDs of the entities in the Set
func (es Set) IDs() []string {
	ids := make([]string, 0, len(es))
	for e := range es {
		ids = append(ids, e.ID)
	}
	return ids
}

func (es Set) String() string {
	b := bytes.Buffer{}
	b.WriteString("{")
	first := true
	for entity := range es {
		if !first {
			b.WriteString(", ")
		} else {
			first = false
		}
		b.WriteString(entity.String())
	}
	b.WriteString("}")
	return b.String()
}
