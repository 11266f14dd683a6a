package grouping

import (
	"context"
	"errors"
)

// Wizard steps.
const (
	StepType          = 1
	StepBasics        = 2
	StepHierarchy     = 3
	StepConfiguration = 4
	StepSummary       = 5
)

// Confirm errors.
var (
	ErrMinBuyersRequired = errors.New("Please specify Minimum Buyers")
	ErrStepBlocked       = errors.New("Current step is incomplete")
)

// ProjectDraft is the project-level form state collected in steps 1 and 2.
// Everything here is transient until Confirm succeeds.
type ProjectDraft struct {
	Title       string   `json:"title"`
	Developer   string   `json:"developer"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	MapAddress  string   `json:"map_address"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	MinBuyers   int      `json:"min_buyers"`
	Area        float64  `json:"area"`
	Possession  string   `json:"possession"`
	ReraNumber  string   `json:"rera_number"`

	RegularPricePerSqft    float64 `json:"regular_price_per_sqft"`
	RegularPricePerSqftMax float64 `json:"regular_price_per_sqft_max"`
	GroupPricePerSqft      float64 `json:"group_price_per_sqft"`
	GroupPricePerSqftMax   float64 `json:"group_price_per_sqft_max"`
	PriceUnit              string  `json:"price_unit"`
	Currency               string  `json:"currency"`

	OfferType          string  `json:"offer_type"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountLabel      string  `json:"discount_label"`
}

// Wizard drives the 5-step project creation flow. All state is local to one
// admin session and discarded unless Confirm succeeds.
type Wizard struct {
	Step     int
	Project  ProjectDraft
	Defaults UnitDefaults
	Store    *Store

	// Local file paths pending upload on Confirm.
	ImagePaths   []string
	BrochurePath string
}

// NewWizard starts a fresh wizard at step 1 with the standard unit defaults.
func NewWizard() *Wizard {
	return &Wizard{
		Step:     StepType,
		Defaults: StandardDefaults(),
		Store:    NewStore(),
		Project:  ProjectDraft{PriceUnit: "sq ft", Currency: "INR"},
	}
}

// Context returns the project-level values injected into generation and
// compilation.
func (w *Wizard) Context() ProjectContext {
	return ProjectContext{
		Area:        w.Project.Area,
		RegularRate: w.Project.RegularPricePerSqft,
		GroupRate:   w.Project.GroupPricePerSqft,
	}
}

// UpdateDefaults replaces the shared template and re-derives every generated
// unit still tracking it; custom units are untouched.
func (w *Wizard) UpdateDefaults(d UnitDefaults) {
	w.Defaults = d
	w.Store.ReapplyDefaults(d)
}

// ValidateStep reports whether forward navigation from the step is allowed.
// Steps 2 and 4 are unconditionally open; only min_buyers hard-blocks the
// final submission (see Confirm).
func (w *Wizard) ValidateStep(step int) bool {
	switch step {
	case StepType:
		return w.Project.Type != ""
	case StepHierarchy:
		selected := w.Store.SelectedTypes()
		if len(selected) == 0 {
			return false
		}
		for _, typ := range selected {
			if typ == TypeCommercial {
				cfg := w.Store.Config(typ)
				if cfg == nil || cfg.TotalUnits == 0 {
					return false
				}
				continue
			}
			if len(w.Store.Towers(typ)) == 0 {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Next advances one step if the current step's gate passes.
func (w *Wizard) Next() error {
	if !w.ValidateStep(w.Step) {
		return ErrStepBlocked
	}
	if w.Step < StepSummary {
		w.Step++
	}
	return nil
}

// Prev moves back one step; never blocked.
func (w *Wizard) Prev() {
	if w.Step > StepType {
		w.Step--
	}
}

// Submission is the compiled payload handed to the persistence collaborator.
type Submission struct {
	Project      ProjectDraft
	Defaults     UnitDefaults
	Types        []string
	Configs      map[string]TypeConfig
	Towers       []CompiledTower
	ImagePaths   []string
	BrochurePath string
}

// Persister is the external persistence collaborator. The create must be
// atomic: all-or-nothing, no partial project on failure.
type Persister interface {
	CreateProjectWithHierarchy(ctx context.Context, sub Submission) (string, error)
}

// Confirm compiles the hierarchy and issues the single atomic create. On
// failure the wizard state is left untouched so the admin can retry without
// re-entering data; rollback is the persister's responsibility.
func (w *Wizard) Confirm(ctx context.Context, p Persister, up Uploader) (string, error) {
	if w.Project.MinBuyers <= 0 {
		return "", ErrMinBuyersRequired
	}

	towers := Compile(ctx, w.Store, w.Context(), up)

	configs := make(map[string]TypeConfig)
	for _, typ := range w.Store.SelectedTypes() {
		if cfg := w.Store.Config(typ); cfg != nil {
			configs[typ] = *cfg
		}
	}

	id, err := p.CreateProjectWithHierarchy(ctx, Submission{
		Project:      w.Project,
		Defaults:     w.Defaults,
		Types:        w.Store.SelectedTypes(),
		Configs:      configs,
		Towers:       towers,
		ImagePaths:   w.ImagePaths,
		BrochurePath: w.BrochurePath,
	})
	if err != nil {
		return "", err
	}

	// Success: reset to a fresh step-1 wizard.
	*w = *NewWizard()
	return id, nil
}
