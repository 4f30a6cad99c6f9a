package snapshot

// Kind is the primary classification of an entity.
type Kind int

const (
	KindNone Kind = iota
	KindSettlement
	KindDistrict
	KindCharacter
	KindBusiness
	KindResidence
	KindTrait
	KindSkill
)

// kindPriority lists the component that marks each kind, highest priority first.
var kindPriority = []struct {
	kind      Kind
	component string
}{
	{KindSettlement, ComponentSettlement},
	{KindDistrict, ComponentDistrict},
	{KindCharacter, ComponentCharacter},
	{KindBusiness, ComponentBusiness},
	{KindResidence, ComponentResidentialBuilding},
	{KindTrait, ComponentTrait},
	{KindSkill, ComponentSkill},
}

// String returns the lower-case kind name used in logs and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindSettlement:
		return "settlement"
	case KindDistrict:
		return "district"
	case KindCharacter:
		return "character"
	case KindBusiness:
		return "business"
	case KindResidence:
		return "residence"
	case KindTrait:
		return "trait"
	case KindSkill:
		return "skill"
	default:
		return "none"
	}
}

// Classify returns the first kind in priority order whose marker component is present.
func Classify(has func(component string) bool) Kind {
	for _, p := range kindPriority {
		if has(p.component) {
			return p.kind
		}
	}
	return KindNone
}
