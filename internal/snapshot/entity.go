package snapshot

import (
	"encoding/json"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

// ID identifies an entity within one snapshot.
type ID int

// Entity is one node of the world graph. Entities are read-only once loaded.
type Entity struct {
	ID         ID
	Name       string
	Parent     *ID
	Kind       Kind
	Components map[string]json.RawMessage
}

// NewEntity builds an entity from already-encoded components and classifies it.
func NewEntity(id ID, name string, components map[string]json.RawMessage) *Entity {
	if components == nil {
		components = map[string]json.RawMessage{}
	}
	e := &Entity{ID: id, Name: name, Components: components}
	e.Kind = Classify(e.Has)
	return e
}

// Has reports whether the attribute bag carries the named component.
func (e *Entity) Has(component string) bool {
	_, ok := e.Components[component]
	return ok
}

// Active reports whether the entity carries the Active marker.
func (e *Entity) Active() bool {
	return e.Has(ComponentActive)
}

// Component decodes a required component into dst.
func (e *Entity) Component(name string, dst any) error {
	found, err := e.OptionalComponent(name, dst)
	if err != nil {
		return err
	}
	if !found {
		return ferrors.ValidationError("entity is missing a required component").
			WithContext("entity_id", int(e.ID)).
			WithContext("component", name).
			Build()
	}
	return nil
}

// OptionalComponent decodes the named component into dst when present.
func (e *Entity) OptionalComponent(name string, dst any) (bool, error) {
	raw, ok := e.Components[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, ferrors.WrapError(err, ferrors.CategoryValidation, "malformed component").
			WithContext("entity_id", int(e.ID)).
			WithContext("component", name).
			Build()
	}
	return true, nil
}
