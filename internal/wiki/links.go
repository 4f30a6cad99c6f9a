package wiki

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/snapshot"
)

// Placeholder values used when optional data is absent.
const (
	NotAvailable      = "N/A"
	PlaceholderHref   = "#"
	UnknownPopulation = -1
	OwnerPlaceholder  = "TBD"
)

const (
	inactiveSuffix = " (inactive)"
	statusActive   = "Active"
	statusInactive = "Inactive"
)

// Link is a display name paired with an href.
type Link struct {
	Name string
	Href string
}

// PageHref is the link to an entity page from another entity page.
func PageHref(id snapshot.ID) string {
	return fmt.Sprintf("../gameobjects/%d.html", id)
}

// IndexHref is the link to an entity page from the index.
func IndexHref(id snapshot.ID) string {
	return fmt.Sprintf("/gameobjects/%d.html", id)
}

func placeholder(name string) Link {
	return Link{Name: name, Href: PlaceholderHref}
}

func activityStatus(e *snapshot.Entity) string {
	if e.Active() {
		return statusActive
	}
	return statusInactive
}

// resolver looks up references made by one entity.
type resolver struct {
	snap   *snapshot.Snapshot
	entity *snapshot.Entity
}

func newResolver(snap *snapshot.Snapshot, e *snapshot.Entity) resolver {
	return resolver{snap: snap, entity: e}
}

// lookup returns the referenced entity; a dangling reference carries both ids.
func (r resolver) lookup(id snapshot.ID) (*snapshot.Entity, error) {
	ref, err := r.snap.Lookup(id)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("entity_id", int(r.entity.ID))
		}
		return nil, err
	}
	return ref, nil
}

func (r resolver) link(id snapshot.ID) (Link, error) {
	ref, err := r.lookup(id)
	if err != nil {
		return Link{}, err
	}
	return Link{Name: ref.Name, Href: PageHref(id)}, nil
}

func (r resolver) links(ids []snapshot.ID) ([]Link, error) {
	out := make([]Link, 0, len(ids))
	for _, id := range ids {
		l, err := r.link(id)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// traits resolves trait identifiers into their display records.
func (r resolver) traits(ids []snapshot.ID) ([]TraitEntry, error) {
	out := make([]TraitEntry, 0, len(ids))
	for _, id := range ids {
		ref, err := r.lookup(id)
		if err != nil {
			return nil, err
		}
		var t snapshot.Trait
		if err := ref.Component(snapshot.ComponentTrait, &t); err != nil {
			return nil, err
		}
		out = append(out, TraitEntry{Name: t.DisplayName, Description: t.Description})
	}
	return out, nil
}

// entityTraits resolves the Traits component of e. An absent component yields no traits.
func (r resolver) entityTraits(e *snapshot.Entity) ([]TraitEntry, error) {
	var t snapshot.Traits
	if _, err := e.OptionalComponent(snapshot.ComponentTraits, &t); err != nil {
		return nil, err
	}
	return r.traits(t.Traits)
}
