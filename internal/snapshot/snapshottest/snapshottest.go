// Package snapshottest provides in-memory snapshot fixtures for tests.
package snapshottest

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"git.home.luguber.info/inful/simwiki/internal/snapshot"
)

// Builder assembles a snapshot document entity by entity, keeping insertion order.
type Builder struct {
	t        testing.TB
	entities []entityDoc
}

type entityDoc struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Parent     *int           `json:"parent,omitempty"`
	Components map[string]any `json:"components"`
}

// NewBuilder starts an empty snapshot.
func NewBuilder(t testing.TB) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// Add appends an entity. Component values are marshaled with encoding/json.
func (b *Builder) Add(id int, name string, components map[string]any) *Builder {
	if components == nil {
		components = map[string]any{}
	}
	b.entities = append(b.entities, entityDoc{ID: id, Name: name, Components: components})
	return b
}

// AddChild appends an entity with a parent reference.
func (b *Builder) AddChild(id, parent int, name string, components map[string]any) *Builder {
	b.Add(id, name, components)
	b.entities[len(b.entities)-1].Parent = &parent
	return b
}

// JSON renders the snapshot document with gameobjects in insertion order.
func (b *Builder) JSON() []byte {
	b.t.Helper()
	var sb strings.Builder
	sb.WriteString(`{"gameobjects":{`)
	for i, e := range b.entities {
		if i > 0 {
			sb.WriteByte(',')
		}
		data, err := json.Marshal(e)
		if err != nil {
			b.t.Fatalf("marshal entity %d: %v", e.ID, err)
		}
		fmt.Fprintf(&sb, "%q:%s", fmt.Sprint(e.ID), data)
	}
	sb.WriteString(`}}`)
	return []byte(sb.String())
}

// Build parses the document into a Snapshot.
func (b *Builder) Build() *snapshot.Snapshot {
	b.t.Helper()
	s, err := snapshot.ParseBytes(b.JSON())
	if err != nil {
		b.t.Fatalf("parse fixture snapshot: %v", err)
	}
	return s
}

// Marker is the value exported for flag components such as Active.
var Marker = map[string]any{}
