package wiki

import (
	ferrors "git.home.luguber.info/inful/simwiki/internal/foundation/errors"
	"git.home.luguber.info/inful/simwiki/internal/snapshot"
	"git.home.luguber.info/inful/simwiki/internal/templates"
)

// Page is shaped page data paired with the template that renders it.
type Page struct {
	Template string
	Data     any
}

type pageBuilder func(*snapshot.Snapshot, *snapshot.Entity) (any, error)

func shape[T any](build func(*snapshot.Snapshot, *snapshot.Entity) (*T, error)) pageBuilder {
	return func(snap *snapshot.Snapshot, e *snapshot.Entity) (any, error) {
		return build(snap, e)
	}
}

type route struct {
	template string
	build    pageBuilder
	dispatch bool
}

var routes = map[snapshot.Kind]route{
	snapshot.KindSettlement: {templates.Settlement, shape(BuildSettlementPage), true},
	snapshot.KindDistrict:   {templates.District, shape(BuildDistrictPage), true},
	snapshot.KindCharacter:  {templates.Character, shape(BuildCharacterPage), true},
	snapshot.KindBusiness:   {templates.Business, shape(BuildBusinessPage), true},
	snapshot.KindResidence:  {templates.Residence, shape(BuildResidencePage), true},
	snapshot.KindTrait:      {"", BuildTraitPage, false},
	snapshot.KindSkill:      {"", BuildSkillPage, false},
}

// Dispatches reports whether Dispatch produces a page for kind.
func Dispatches(kind snapshot.Kind) bool {
	return routes[kind].dispatch
}

// Dispatch shapes the page for e's primary kind. ok is false when the kind
// has no page (traits, skills and unclassified entities); those are skipped.
func Dispatch(snap *snapshot.Snapshot, e *snapshot.Entity) (page Page, ok bool, err error) {
	if !Dispatches(e.Kind) {
		return Page{}, false, nil
	}
	page, err = BuildPage(snap, e)
	return page, err == nil, err
}

// BuildPage shapes the page for e's primary kind without the dispatch filter.
// Trait and skill entities return an unimplemented error.
func BuildPage(snap *snapshot.Snapshot, e *snapshot.Entity) (Page, error) {
	rt, found := routes[e.Kind]
	if !found {
		return Page{}, ferrors.NotFoundError("no page generator for kind").
			WithContext("entity_id", int(e.ID)).
			WithContext("kind", e.Kind.String()).
			Build()
	}
	data, err := rt.build(snap, e)
	if err != nil {
		return Page{}, err
	}
	return Page{Template: rt.template, Data: data}, nil
}
