package snapshottest

import (
	"testing"

	"git.home.luguber.info/inful/simwiki/internal/snapshot"
)

// Identifiers of the entities in World.
const (
	AshtonID       = 1
	OldTownID      = 2
	IvyRowID       = 10
	IvyRowUnitA    = 11
	IvyRowUnitB    = 12
	KettleID       = 20
	OldMillID      = 21
	AdaID          = 30
	BenID          = 31
	CoraID         = 32
	CozyTraitID    = 40
	FriendlyID     = 41
	SpouseTraitID  = 42
	CookingSkillID = 50
	FishingSkillID = 51
	AdaToBenRelID  = 60
	BenToAdaRelID  = 61
	ClockID        = 70
)

// WorldBuilder returns a builder pre-populated with a small but complete town:
// one settlement, one district, one residential building with two units, two
// businesses (one inactive), three characters, traits, skills, relationships
// and one entity of no known kind.
func WorldBuilder(t testing.TB) *Builder {
	t.Helper()
	b := NewBuilder(t)
	b.Add(AshtonID, "Ashton", map[string]any{
		"Settlement": map[string]any{"population": 500, "description": "A river town.", "districts": []int{OldTownID}},
	})
	b.Add(OldTownID, "Old Town", map[string]any{
		"District": map[string]any{
			"population":  120,
			"description": "The **oldest** quarter.",
			"settlement":  AshtonID,
			"residences":  []int{IvyRowID},
			"businesses":  []int{KettleID, OldMillID},
		},
	})
	b.Add(IvyRowID, "Ivy Row", map[string]any{
		"Active":              Marker,
		"ResidentialBuilding": map[string]any{"district": OldTownID, "units": []int{IvyRowUnitA, IvyRowUnitB}},
		"Traits":              map[string]any{"traits": []int{CozyTraitID}},
	})
	b.AddChild(IvyRowUnitA, IvyRowID, "Ivy Row #1", map[string]any{
		"Residence": map[string]any{"residents": []int{BenID, AdaID}},
	})
	b.AddChild(IvyRowUnitB, IvyRowID, "Ivy Row #2", map[string]any{
		"Residence": map[string]any{"residents": []int{CoraID}},
	})
	b.Add(KettleID, "The Crooked Kettle", map[string]any{
		"Active":   Marker,
		"Business": map[string]any{"district": OldTownID},
		"Traits":   map[string]any{"traits": []int{CozyTraitID}},
	})
	b.Add(OldMillID, "Old Mill", map[string]any{
		"Business": map[string]any{"district": OldTownID},
		"Traits":   map[string]any{"traits": []int{}},
	})
	b.Add(AdaID, "Ada Hale", map[string]any{
		"Active":     Marker,
		"Character":  map[string]any{"age": 34, "sex": "FEMALE", "life_stage": "ADULT", "species": "human"},
		"Resident":   map[string]any{"residence": IvyRowUnitA},
		"Occupation": map[string]any{"business": KettleID},
		"Traits":     map[string]any{"traits": []int{FriendlyID}},
		// Raw JSON keeps the skill order stable: fishing before cooking.
		"Skills":              rawJSON(`{"51": 2, "50": 3.5}`),
		"FrequentedLocations": map[string]any{"locations": []int{KettleID, IvyRowID}},
		"Relationships":       rawJSON(`{"outgoing": {"31": 60}, "incoming": {"31": 61}}`),
	})
	b.Add(BenID, "Ben Hale", map[string]any{
		"Active":              Marker,
		"Character":           map[string]any{"age": 36.5, "sex": "MALE", "life_stage": "ADULT", "species": "human"},
		"Resident":            map[string]any{"residence": IvyRowUnitA},
		"Traits":              map[string]any{"traits": []int{}},
		"Skills":              map[string]any{},
		"FrequentedLocations": map[string]any{"locations": []int{}},
		"Relationships":       rawJSON(`{"outgoing": {"30": 61}, "incoming": {"30": 60}}`),
	})
	b.Add(CoraID, "Cora Finch", map[string]any{
		"Character": map[string]any{"age": 71, "sex": 1, "life_stage": "SENIOR", "species": "human"},
	})
	b.Add(CozyTraitID, "cozy", map[string]any{
		"Trait": map[string]any{"display_name": "Cozy", "description": "Warm and welcoming."},
	})
	b.Add(FriendlyID, "friendly", map[string]any{
		"Trait": map[string]any{"display_name": "Friendly", "description": "Easy to talk to."},
	})
	b.Add(SpouseTraitID, "spouse", map[string]any{
		"Trait": map[string]any{"display_name": "Spouse", "description": "Married to the target."},
	})
	b.Add(CookingSkillID, "cooking", map[string]any{
		"Skill": map[string]any{"display_name": "Cooking", "description": "Preparing food."},
	})
	b.Add(FishingSkillID, "fishing", map[string]any{
		"Skill": map[string]any{"display_name": "Fishing", "description": "Catching fish."},
	})
	b.Add(AdaToBenRelID, "Ada -> Ben", map[string]any{
		"Stats":  map[string]any{"reputation": 20, "romance": 15, "compatibility": 0.5, "romantic_compatibility": 0.25},
		"Traits": map[string]any{"traits": []int{SpouseTraitID}},
	})
	b.Add(BenToAdaRelID, "Ben -> Ada", map[string]any{
		"Stats":  map[string]any{"reputation": 18, "romance": 12, "compatibility": 0.5, "romantic_compatibility": 0.3},
		"Traits": map[string]any{"traits": []int{SpouseTraitID}},
	})
	b.Add(ClockID, "World Clock", map[string]any{
		"SimDate": map[string]any{"year": 12},
	})
	return b
}

// World returns the parsed WorldBuilder snapshot.
func World(t testing.TB) *snapshot.Snapshot {
	t.Helper()
	return WorldBuilder(t).Build()
}

type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) { return []byte(r), nil }
