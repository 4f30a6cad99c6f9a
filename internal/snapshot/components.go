package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Component names as they appear in an entity's attribute bag.
const (
	ComponentActive              = "Active"
	ComponentSettlement          = "Settlement"
	ComponentDistrict            = "District"
	ComponentCharacter           = "Character"
	ComponentBusiness            = "Business"
	ComponentResidentialBuilding = "ResidentialBuilding"
	ComponentResidence           = "Residence"
	ComponentResident            = "Resident"
	ComponentOccupation          = "Occupation"
	ComponentTraits              = "Traits"
	ComponentTrait               = "Trait"
	ComponentSkills              = "Skills"
	ComponentSkill               = "Skill"
	ComponentFrequentedLocations = "FrequentedLocations"
	ComponentRelationships       = "Relationships"
	ComponentStats               = "Stats"
)

type Settlement struct {
	Population  *int    `json:"population"`
	Description *string `json:"description"`
	Districts   []ID    `json:"districts"`
}

type District struct {
	Population  *int    `json:"population"`
	Description *string `json:"description"`
	Settlement  ID      `json:"settlement"`
	Residences  []ID    `json:"residences"`
	Businesses  []ID    `json:"businesses"`
}

type Business struct {
	District ID `json:"district"`
}

type Character struct {
	Age       Text `json:"age"`
	Sex       Text `json:"sex"`
	LifeStage Text `json:"life_stage"`
	Species   Text `json:"species"`
}

// ResidentialBuilding is a building split into residential units.
type ResidentialBuilding struct {
	District ID   `json:"district"`
	Units    []ID `json:"units"`
}

// Residence is one residential unit; its entity's parent is the building.
type Residence struct {
	Residents []ID `json:"residents"`
}

// Resident links a character to the unit it lives in.
type Resident struct {
	Residence ID `json:"residence"`
}

type Occupation struct {
	Business ID `json:"business"`
}

type Traits struct {
	Traits []ID `json:"traits"`
}

// Trait is the definition record carried by trait entities.
type Trait struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Skills maps skill entity identifiers to levels in document order.
type Skills = OrderedIDMap[float64]

type Skill struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

type FrequentedLocations struct {
	Locations []ID `json:"locations"`
}

// Relationships maps target character identifiers to relationship entity identifiers.
type Relationships struct {
	Outgoing OrderedIDMap[ID] `json:"outgoing"`
	Incoming OrderedIDMap[ID] `json:"incoming"`
}

// Stats is carried by relationship entities.
type Stats struct {
	Reputation            float64 `json:"reputation"`
	Romance               float64 `json:"romance"`
	Compatibility         float64 `json:"compatibility"`
	RomanticCompatibility float64 `json:"romantic_compatibility"`
}

// Text accepts any JSON scalar and keeps its textual form. Simulations export
// enum-like fields either as names or as numbers; pages only display them.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	default:
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// IDEntry is one key/value pair of an OrderedIDMap.
type IDEntry[V any] struct {
	Key   ID
	Value V
}

// OrderedIDMap is a JSON object keyed by entity identifiers that remembers key order.
type OrderedIDMap[V any] []IDEntry[V]

func (m *OrderedIDMap[V]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid JSON object")
	}
	res := gjson.ParseBytes(data)
	if res.Type == gjson.Null {
		*m = nil
		return nil
	}
	if !res.IsObject() {
		return fmt.Errorf("expected object keyed by entity id, got %s", res.Type)
	}

	out := make(OrderedIDMap[V], 0)
	var iterErr error
	res.ForEach(func(key, value gjson.Result) bool {
		id, err := ParseID(key.String())
		if err != nil {
			iterErr = err
			return false
		}
		var v V
		if err := json.Unmarshal([]byte(value.Raw), &v); err != nil {
			iterErr = fmt.Errorf("entry %d: %w", id, err)
			return false
		}
		out = append(out, IDEntry[V]{Key: id, Value: v})
		return true
	})
	if iterErr != nil {
		return iterErr
	}
	*m = out
	return nil
}

// ParseID parses an entity identifier from its JSON object key form.
func ParseID(s string) (ID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q", s)
	}
	return ID(n), nil
}
