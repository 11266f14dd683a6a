package grouping

// PopulateTower expands a tower row into its floor→unit map according to the
// property type. Any existing units for the tower are discarded first; this
// is the destructive "Reset to Defaults" path and callers must confirm with
// the admin before invoking it.
//
// Commercial towers are not handled here: they have no per-floor editing and
// are synthesized during compilation.
func (s *Store) PopulateTower(typ string, towerIdx int, defaults UnitDefaults, proj ProjectContext) error {
	towers := s.towers[typ]
	if towerIdx < 0 || towerIdx >= len(towers) {
		return ErrTowerNotFound
	}
	tower := towers[towerIdx]

	s.clearTower(typ, towerIdx)

	switch typ {
	case TypeBungalow, TypeTwinVilla:
		total := tower.TotalBungalows
		if total < 1 {
			total = 1
		}
		for i := 0; i < total; i++ {
			s.insert(typ, towerIdx, 0, i, BuildBungalowUnit(typ, i, *tower))
		}

	case TypePlot:
		rows := tower.LayoutRows
		if rows == 0 {
			rows = 5
		}
		cols := tower.LayoutColumns
		if cols == 0 {
			cols = 4
		}
		cfg := TypeConfig{}
		if c := s.configs[typ]; c != nil {
			cfg = *c
		}
		for i := 0; i < rows*cols; i++ {
			s.insert(typ, towerIdx, 0, i, BuildPlotUnit(i, cfg, proj))
		}

	default:
		perFloor := tower.UnitsPerFloor
		if perFloor == 0 {
			perFloor = 4
		}
		fill := func(floor int) {
			for i := 0; i < perFloor; i++ {
				s.insert(typ, towerIdx, floor, i, BuildUnit(typ, i, defaults))
			}
		}
		if tower.HasBasement {
			fill(-1)
		}
		if tower.HasGroundFloor {
			fill(0)
		}
		for f := 1; f <= tower.Floors; f++ {
			fill(f)
		}
	}
	return nil
}

// CopyFloor deep-duplicates fromFloor's unit list into toFloor, customization
// flags included. The copy is independently mutable afterward.
func (s *Store) CopyFloor(typ string, towerIdx, fromFloor, toFloor int) error {
	if towerIdx < 0 || towerIdx >= len(s.towers[typ]) {
		return ErrTowerNotFound
	}
	s.clearFloor(typ, towerIdx, toFloor)
	src := s.UnitsOn(typ, towerIdx, fromFloor)
	for i, u := range src {
		s.insert(typ, towerIdx, toFloor, i, u.Clone())
	}
	return nil
}

func (s *Store) insert(typ string, towerIdx, floor, pos int, u *UnitDraft) {
	s.units[unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: pos}] = u
	fk := floorKey{Type: typ, Tower: towerIdx, Floor: floor}
	if pos+1 > s.counts[fk] {
		s.counts[fk] = pos + 1
	}
}

func (s *Store) clearTower(typ string, towerIdx int) {
	for k := range s.units {
		if k.Type == typ && k.Tower == towerIdx {
			delete(s.units, k)
		}
	}
	for k := range s.counts {
		if k.Type == typ && k.Tower == towerIdx {
			delete(s.counts, k)
		}
	}
}

func (s *Store) clearFloor(typ string, towerIdx, floor int) {
	fk := floorKey{Type: typ, Tower: towerIdx, Floor: floor}
	n := s.counts[fk]
	for i := 0; i < n; i++ {
		delete(s.units, unitKey{Type: typ, Tower: towerIdx, Floor: floor, Pos: i})
	}
	delete(s.counts, fk)
}
