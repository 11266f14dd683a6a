package wizard

import (
	"errors"
	"sync"

	"badabuilder-backend/internal/grouping"
)

var ErrNoDraft = errors.New("No draft in progress")

// Registry holds the in-flight wizard draft per admin. Drafts live in memory
// only; an admin has at most one draft and it is discarded on restart.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*grouping.Wizard
}

func NewRegistry() *Registry {
	return &Registry{drafts: make(map[string]*grouping.Wizard)}
}

// Start replaces any existing draft with a fresh step-1 wizard.
func (r *Registry) Start(adminID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[adminID] = grouping.NewWizard()
}

// Discard drops the admin's draft if one exists.
func (r *Registry) Discard(adminID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, adminID)
}

// With runs fn against the admin's draft while holding the registry lock.
// Wizard state is not safe for concurrent mutation; everything goes through
// here.
func (r *Registry) With(adminID string, fn func(w *grouping.Wizard) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.drafts[adminID]
	if !ok {
		return ErrNoDraft
	}
	return fn(w)
}

// DraftView is the JSON snapshot of the wizard returned to the admin UI.
type DraftView struct {
	Step     int                             `json:"step"`
	Project  grouping.ProjectDraft           `json:"project"`
	Defaults grouping.UnitDefaults           `json:"defaults"`
	Types    []string                        `json:"types"`
	Configs  map[string]grouping.TypeConfig  `json:"configs"`
	Towers   map[string][]TowerView          `json:"towers"`
}

// TowerView is one tower row with its floors expanded for display.
type TowerView struct {
	Config grouping.TowerConfig `json:"config"`
	Floors []FloorView          `json:"floors"`
}

// FloorView is one floor's ordered unit list.
type FloorView struct {
	Floor int                   `json:"floor"`
	Units []grouping.UnitDraft  `json:"units"`
}

// Snapshot renders the full draft state.
func Snapshot(w *grouping.Wizard) DraftView {
	view := DraftView{
		Step:     w.Step,
		Project:  w.Project,
		Defaults: w.Defaults,
		Types:    w.Store.SelectedTypes(),
		Configs:  make(map[string]grouping.TypeConfig),
		Towers:   make(map[string][]TowerView),
	}
	for _, typ := range view.Types {
		if cfg := w.Store.Config(typ); cfg != nil {
			view.Configs[typ] = *cfg
		}
		towers := w.Store.Towers(typ)
		tvs := make([]TowerView, 0, len(towers))
		for idx, tower := range towers {
			tv := TowerView{Config: *tower}
			for _, floor := range w.Store.FloorNumbers(typ, idx) {
				fv := FloorView{Floor: floor}
				for _, u := range w.Store.UnitsOn(typ, idx, floor) {
					fv.Units = append(fv.Units, *u)
				}
				tv.Floors = append(tv.Floors, fv)
			}
			tvs = append(tvs, tv)
		}
		view.Towers[typ] = tvs
	}
	return view
}
