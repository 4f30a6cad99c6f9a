package wiki

import (
	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/snapshot"
)

// TraitEntry is a trait as listed on a page.
type TraitEntry struct {
	Name        string
	Description string
}

// SkillEntry is a character skill with its level.
type SkillEntry struct {
	Name        string
	Level       float64
	Description string
}

// Unit is one residential unit of a building.
type Unit struct {
	Number    snapshot.ID
	Residents []Link
}

// Relationship is an outgoing relationship of a character.
type Relationship struct {
	Target                Link
	Reputation            float64
	Romance               float64
	Compatibility         float64
	RomanticCompatibility float64
	Traits                []TraitEntry
}

// Event is a dated entry in an entity's history. Snapshots carry no events yet.
type Event struct {
	Timestamp   string
	Description string
}

type SettlementPage struct {
	Name        string
	Population  int
	Description string
	Districts   []Link
}

type DistrictPage struct {
	Name        string
	Population  int
	Description string
	Settlement  Link
	Residences  []Link
	Residents   []Link
	Businesses  []Link
}

type BusinessPage struct {
	Name           string
	ActivityStatus string
	District       Link
	Owner          Link
	FrequentedBy   []Link
	Traits         []TraitEntry
	Events         []Event
}

type CharacterPage struct {
	Name                string
	ActivityStatus      string
	Age                 string
	Sex                 string
	LifeStage           string
	Species             string
	Residence           Link
	Occupation          Link
	Traits              []TraitEntry
	Skills              []SkillEntry
	FrequentedLocations []Link
	Relationships       []Relationship
	Events              []Event
}

type ResidencePage struct {
	Name           string
	ActivityStatus string
	District       Link
	Traits         []TraitEntry
	Units          []Unit
}

func population(p *int) int {
	if p == nil {
		return UnknownPopulation
	}
	return *p
}

func description(d *string) string {
	if d == nil {
		return NotAvailable
	}
	return *d
}

// BuildSettlementPage shapes a settlement entity.
func BuildSettlementPage(snap *snapshot.Snapshot, e *snapshot.Entity) (*SettlementPage, error) {
	var s snapshot.Settlement
	if err := e.Component(snapshot.ComponentSettlement, &s); err != nil {
		return nil, err
	}
	districts, err := newResolver(snap, e).links(s.Districts)
	if err != nil {
		return nil, err
	}
	return &SettlementPage{
		Name:        e.Name,
		Population:  population(s.Population),
		Description: description(s.Description),
		Districts:   districts,
	}, nil
}

// BuildDistrictPage shapes a district entity. Residents are flattened across
// every residence and unit, in residence, unit and resident order.
func BuildDistrictPage(snap *snapshot.Snapshot, e *snapshot.Entity) (*DistrictPage, error) {
	var d snapshot.District
	if err := e.Component(snapshot.ComponentDistrict, &d); err != nil {
		return nil, err
	}
	r := newResolver(snap, e)

	settlement, err := r.link(d.Settlement)
	if err != nil {
		return nil, err
	}

	residences := make([]Link, 0, len(d.Residences))
	residents := make([]Link, 0)
	for _, id := range d.Residences {
		building, err := r.lookup(id)
		if err != nil {
			return nil, err
		}
		residences = append(residences, Link{Name: building.Name, Href: PageHref(id)})

		units, err := r.units(building)
		if err != nil {
			return nil, err
		}
		for _, u := range units {
			residents = append(residents, u.Residents...)
		}
	}

	businesses, err := r.links(d.Businesses)
	if err != nil {
		return nil, err
	}

	return &DistrictPage{
		Name:        e.Name,
		Population:  population(d.Population),
		Description: description(d.Description),
		Settlement:  settlement,
		Residences:  residences,
		Residents:   residents,
		Businesses:  businesses,
	}, nil
}

// BuildBusinessPage shapes a business entity. Owner, patrons and events are
// not tracked by the simulation export and render as placeholders.
func BuildBusinessPage(snap *snapshot.Snapshot, e *snapshot.Entity) (*BusinessPage, error) {
	var b snapshot.Business
	if err := e.Component(snapshot.ComponentBusiness, &b); err != nil {
		return nil, err
	}
	r := newResolver(snap, e)

	district, err := r.link(b.District)
	if err != nil {
		return nil, err
	}
	traits, err := r.entityTraits(e)
	if err != nil {
		return nil, err
	}

	return &BusinessPage{
		Name:           e.Name,
		ActivityStatus: activityStatus(e),
		District:       district,
		Owner:          placeholder(OwnerPlaceholder),
		FrequentedBy:   []Link{},
		Traits:         traits,
		Events:         []Event{},
	}, nil
}

// BuildCharacterPage shapes a character entity.
func BuildCharacterPage(snap *snapshot.Snapshot, e *snapshot.Entity) (*CharacterPage, error) {
	var c snapshot.Character
	if err := e.Component(snapshot.ComponentCharacter, &c); err != nil {
		return nil, err
	}
	r := newResolver(snap, e)

	page := &CharacterPage{
		Name:           e.Name,
		ActivityStatus: activityStatus(e),
		Age:            c.Age.String(),
		Sex:            c.Sex.String(),
		LifeStage:      c.LifeStage.String(),
		Species:        c.Species.String(),
		Residence:      placeholder(NotAvailable),
		Occupation:     placeholder(NotAvailable),
		Events:         []Event{},
	}

	var resident snapshot.Resident
	found, err := e.OptionalComponent(snapshot.ComponentResident, &resident)
	if err != nil {
		return nil, err
	}
	if found {
		if page.Residence, err = r.building(resident.Residence); err != nil {
			return nil, err
		}
	}

	var occupation snapshot.Occupation
	found, err = e.OptionalComponent(snapshot.ComponentOccupation, &occupation)
	if err != nil {
		return nil, err
	}
	if found {
		if page.Occupation, err = r.link(occupation.Business); err != nil {
			return nil, err
		}
	}

	if page.Traits, err = r.entityTraits(e); err != nil {
		return nil, err
	}
	if page.Skills, err = r.skills(e); err != nil {
		return nil, err
	}

	var locations snapshot.FrequentedLocations
	if _, err = e.OptionalComponent(snapshot.ComponentFrequentedLocations, &locations); err != nil {
		return nil, err
	}
	if page.FrequentedLocations, err = r.links(locations.Locations); err != nil {
		return nil, err
	}

	if page.Relationships, err = r.relationships(e); err != nil {
		return nil, err
	}
	return page, nil
}

// BuildResidencePage shapes a residential building entity.
func BuildResidencePage(snap *snapshot.Snapshot, e *snapshot.Entity) (*ResidencePage, error) {
	var rb snapshot.ResidentialBuilding
	if err := e.Component(snapshot.ComponentResidentialBuilding, &rb); err != nil {
		return nil, err
	}
	r := newResolver(snap, e)

	district, err := r.link(rb.District)
	if err != nil {
		return nil, err
	}
	traits, err := r.entityTraits(e)
	if err != nil {
		return nil, err
	}
	units, err := r.units(e)
	if err != nil {
		return nil, err
	}

	return &ResidencePage{
		Name:           e.Name,
		ActivityStatus: activityStatus(e),
		District:       district,
		Traits:         traits,
		Units:          units,
	}, nil
}

// BuildTraitPage is reserved for trait entities, which have no page yet.
func BuildTraitPage(_ *snapshot.Snapshot, e *snapshot.Entity) (any, error) {
	return nil, unimplemented(e, snapshot.KindTrait)
}

// BuildSkillPage is reserved for skill entities, which have no page yet.
func BuildSkillPage(_ *snapshot.Snapshot, e *snapshot.Entity) (any, error) {
	return nil, unimplemented(e, snapshot.KindSkill)
}

func unimplemented(e *snapshot.Entity, kind snapshot.Kind) error {
	return ferrors.UnimplementedError("page generation not implemented for kind").
		WithContext("entity_id", int(e.ID)).
		WithContext("kind", kind.String()).
		Build()
}

// building resolves a residential unit to the building that contains it.
func (r resolver) building(unitID snapshot.ID) (Link, error) {
	unit, err := r.lookup(unitID)
	if err != nil {
		return Link{}, err
	}
	if unit.Parent == nil {
		return Link{}, ferrors.ValidationError("residence unit has no parent building").
			WithContext("entity_id", int(r.entity.ID)).
			WithContext("ref_id", int(unitID)).
			Build()
	}
	return r.link(*unit.Parent)
}

// units resolves the units of a residential building and their residents.
func (r resolver) units(building *snapshot.Entity) ([]Unit, error) {
	var rb snapshot.ResidentialBuilding
	if err := building.Component(snapshot.ComponentResidentialBuilding, &rb); err != nil {
		return nil, err
	}
	out := make([]Unit, 0, len(rb.Units))
	for _, id := range rb.Units {
		unit, err := r.lookup(id)
		if err != nil {
			return nil, err
		}
		var res snapshot.Residence
		if err := unit.Component(snapshot.ComponentResidence, &res); err != nil {
			return nil, err
		}
		residents, err := r.links(res.Residents)
		if err != nil {
			return nil, err
		}
		out = append(out, Unit{Number: id, Residents: residents})
	}
	return out, nil
}

func (r resolver) skills(e *snapshot.Entity) ([]SkillEntry, error) {
	var skills snapshot.Skills
	if _, err := e.OptionalComponent(snapshot.ComponentSkills, &skills); err != nil {
		return nil, err
	}
	out := make([]SkillEntry, 0, len(skills))
	for _, entry := range skills {
		ref, err := r.lookup(entry.Key)
		if err != nil {
			return nil, err
		}
		var s snapshot.Skill
		if err := ref.Component(snapshot.ComponentSkill, &s); err != nil {
			return nil, err
		}
		out = append(out, SkillEntry{Name: s.DisplayName, Level: entry.Value, Description: s.Description})
	}
	return out, nil
}

func (r resolver) relationships(e *snapshot.Entity) ([]Relationship, error) {
	var rels snapshot.Relationships
	if _, err := e.OptionalComponent(snapshot.ComponentRelationships, &rels); err != nil {
		return nil, err
	}
	out := make([]Relationship, 0, len(rels.Outgoing))
	for _, entry := range rels.Outgoing {
		target, err := r.link(entry.Key)
		if err != nil {
			return nil, err
		}
		rel, err := r.lookup(entry.Value)
		if err != nil {
			return nil, err
		}
		var stats snapshot.Stats
		if err := rel.Component(snapshot.ComponentStats, &stats); err != nil {
			return nil, err
		}
		traits, err := r.entityTraits(rel)
		if err != nil {
			return nil, err
		}
		out = append(out, Relationship{
			Target:                target,
			Reputation:            stats.Reputation,
			Romance:               stats.Romance,
			Compatibility:         stats.Compatibility,
			RomanticCompatibility: stats.RomanticCompatibility,
			Traits:                traits,
		})
	}
	return out, nil
}
