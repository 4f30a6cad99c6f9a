package wiki

import "git.home.luguber.info/inful/simwiki/internal/snapshot"

// IndexPage buckets entities for the homepage.
type IndexPage struct {
	Settlements []Link
	Districts   []Link
	Businesses  []Link
	Characters  []Link
}

// BuildIndex buckets every settlement, district, business and character in
// snapshot order. Index links are root-relative.
func BuildIndex(snap *snapshot.Snapshot) *IndexPage {
	idx := &IndexPage{
		Settlements: []Link{},
		Districts:   []Link{},
		Businesses:  []Link{},
		Characters:  []Link{},
	}
	for _, e := range snap.Entities() {
		switch e.Kind {
		case snapshot.KindSettlement:
			idx.Settlements = append(idx.Settlements, indexLink(e, false))
		case snapshot.KindDistrict:
			idx.Districts = append(idx.Districts, indexLink(e, false))
		case snapshot.KindBusiness:
			idx.Businesses = append(idx.Businesses, indexLink(e, true))
		case snapshot.KindCharacter:
			idx.Characters = append(idx.Characters, indexLink(e, true))
		}
	}
	return idx
}

func indexLink(e *snapshot.Entity, markInactive bool) Link {
	name := e.Name
	if markInactive && !e.Active() {
		name += inactiveSuffix
	}
	return Link{Name: name, Href: IndexHref(e.ID)}
}
