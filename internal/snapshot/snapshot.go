package snapshot

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
)

// Snapshot is the complete, immutable world state for one run.
type Snapshot struct {
	entities map[ID]*Entity
	order    []ID
}

type rawEntity struct {
	ID         *ID                        `json:"id"`
	Name       string                     `json:"name"`
	Parent     *ID                        `json:"parent"`
	Components map[string]json.RawMessage `json:"components"`
}

// New builds a snapshot from in-memory entities, keeping the given order.
// It is the entry point for snapshots produced directly by a simulation run.
func New(entities ...*Entity) (*Snapshot, error) {
	s := &Snapshot{entities: make(map[ID]*Entity, len(entities))}
	for _, e := range entities {
		if e == nil {
			continue
		}
		if _, dup := s.entities[e.ID]; dup {
			return nil, ferrors.SnapshotError("duplicate entity id").WithContext("entity_id", int(e.ID)).Build()
		}
		s.add(e)
	}
	return s, nil
}

// Load reads and decodes the snapshot file at path.
func Load(path string) (*Snapshot, error) {
	// #nosec G304 -- the snapshot path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "failed to read snapshot"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "snapshot file not found"
		}
		return nil, ferrors.WrapError(err, ferrors.CategorySnapshot, msg).
			Fatal().
			WithContext("path", path).
			Build()
	}
	s, err := ParseBytes(data)
	if err != nil {
		if classified, ok := ferrors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}
	return s, nil
}

// Parse decodes a snapshot from r.
func Parse(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySnapshot, "failed to read snapshot").Fatal().Build()
	}
	return ParseBytes(data)
}

// ParseBytes decodes a snapshot document.
func ParseBytes(data []byte) (*Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return nil, ferrors.SnapshotError("snapshot is not valid JSON").Build()
	}
	objects := gjson.GetBytes(data, "gameobjects")
	if !objects.IsObject() {
		return nil, ferrors.SnapshotError("snapshot has no gameobjects object").Build()
	}

	s := &Snapshot{entities: make(map[ID]*Entity)}
	var parseErr error
	objects.ForEach(func(key, value gjson.Result) bool {
		e, err := decodeEntity(key.String(), value)
		if err != nil {
			parseErr = err
			return false
		}
		s.add(e)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return s, nil
}

func decodeEntity(key string, value gjson.Result) (*Entity, error) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return nil, ferrors.SnapshotError("gameobjects key is not an integer id").WithContext("key", key).Build()
	}
	if !value.IsObject() {
		return nil, ferrors.SnapshotError("gameobject is not an object").WithContext("entity_id", id).Build()
	}

	var raw rawEntity
	if err := json.Unmarshal([]byte(value.Raw), &raw); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategorySnapshot, "malformed gameobject").
			Fatal().
			WithContext("entity_id", id).
			Build()
	}
	if raw.ID != nil && int(*raw.ID) != id {
		return nil, ferrors.SnapshotError("gameobject id does not match its key").
			WithContext("entity_id", id).
			WithContext("declared_id", int(*raw.ID)).
			Build()
	}

	e := NewEntity(ID(id), raw.Name, raw.Components)
	e.Parent = raw.Parent
	return e, nil
}

// add inserts e, replacing an earlier entity with the same id in place.
func (s *Snapshot) add(e *Entity) {
	if _, exists := s.entities[e.ID]; !exists {
		s.order = append(s.order, e.ID)
	}
	s.entities[e.ID] = e
}

// Len returns the number of entities.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// Entities returns every entity in snapshot order.
func (s *Snapshot) Entities() []*Entity {
	out := make([]*Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

// Get returns the entity with the given id, if any.
func (s *Snapshot) Get(id ID) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Lookup returns the entity with the given id or a not_found error.
func (s *Snapshot) Lookup(id ID) (*Entity, error) {
	if e, ok := s.entities[id]; ok {
		return e, nil
	}
	return nil, ferrors.NotFoundError("referenced entity not in snapshot").
		WithContext("ref_id", int(id)).
		Build()
}
