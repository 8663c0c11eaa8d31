package rules

// Catalog bundles the static definition tables behind lookup maps. The engine
// holds exactly one Catalog per game session.
type Catalog struct {
	Techs     map[TechID]Tech
	Tribes    map[TribeKind]Tribe
	Buildings map[BuildingID]Building
	Units     map[UnitID]Unit

	Policies   []PolicyID
	Promotions []PromotionID
	Milestones []MilestoneID

	// FallbackNames is the generic settlement name pool shared by all tribes
	// once their own list is exhausted.
	FallbackNames []string
}

// DefaultCatalog returns the base ruleset.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		Techs:         make(map[TechID]Tech, len(defaultTechs)),
		Tribes:        make(map[TribeKind]Tribe, len(defaultTribes)),
		Buildings:     make(map[BuildingID]Building, len(defaultBuildings)),
		Units:         make(map[UnitID]Unit, len(defaultUnits)),
		Policies:      defaultPolicies,
		Promotions:    defaultPromotions,
		Milestones:    defaultMilestones,
		FallbackNames: fallbackSettlementNames,
	}
	for _, t := range defaultTechs {
		c.Techs[t.ID] = t
	}
	for _, t := range defaultTribes {
		c.Tribes[t.Kind] = t
	}
	for _, b := range defaultBuildings {
		c.Buildings[b.ID] = b
	}
	for _, u := range defaultUnits {
		c.Units[u.ID] = u
	}
	return c
}

// Tribe returns the tribe template, falling back to a zero-bonus template for
// unknown kinds so lookups are total.
func (c *Catalog) Tribe(kind TribeKind) Tribe {
	if t, ok := c.Tribes[kind]; ok {
		return t
	}
	return Tribe{Kind: kind, Name: string(kind)}
}
