package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/lumenlearn/skillaudit/internal/domain"
	"github.com/lumenlearn/skillaudit/internal/service"
	"go.uber.org/zap"
)

// ProfilePayload is the wire shape of one student profile. IDs are assigned
// server-side so callers never have to mint UUIDs.
type ProfilePayload struct {
	Name       string `json:"name" validate:"required"`
	GradeLevel int    `json:"grade_level" validate:"required,gte=6,lte=12"`

	SelectedGoals []string `json:"selected_goals"`
	GoalNarrative string   `json:"goal_narrative"`

	Interests      string `json:"interests"`
	PastActivities string `json:"past_activities"`
	Achievements   string `json:"achievements"`
	Challenges     string `json:"challenges"`

	SelfRatings map[string]int `json:"self_ratings" validate:"dive,gte=0,lte=100"`

	WeeklyTimeBudgetHours float64 `json:"weekly_time_budget_hours" validate:"gte=0"`
}

func (p *ProfilePayload) toDomain() (domain.StudentProfile, error) {
	ratings := make(map[domain.Skill]int, len(p.SelfRatings))
	for name, level := range p.SelfRatings {
		if !domain.ValidSkill(name) {
			return domain.StudentProfile{}, fmt.Errorf("unknown skill in self_ratings: %q", name)
		}
		ratings[domain.Skill(name)] = level
	}
	return domain.StudentProfile{
		ID:                    uuid.New(),
		Name:                  p.Name,
		GradeLevel:            p.GradeLevel,
		SelectedGoals:         append([]string(nil), p.SelectedGoals...),
		GoalNarrative:         p.GoalNarrative,
		Interests:             p.Interests,
		PastActivities:        p.PastActivities,
		Achievements:          p.Achievements,
		Challenges:            p.Challenges,
		SelfRatings:           ratings,
		WeeklyTimeBudgetHours: p.WeeklyTimeBudgetHours,
	}, nil
}

// RunOptions selects which perturbation variants to generate and how the
// batch executes.
type RunOptions struct {
	Injection      bool `json:"injection"`
	Removal        bool `json:"removal"`
	Rephrasing     bool `json:"rephrasing"`
	SkipActionPlan bool `json:"skip_action_plan"`
	Workers        int  `json:"workers" validate:"gte=0,lte=16"`
}

func (o RunOptions) toConfig() service.RunConfig {
	return service.RunConfig{
		RunInjection:   o.Injection,
		RunRemoval:     o.Removal,
		RunRephrasing:  o.Rephrasing,
		SkipActionPlan: o.SkipActionPlan,
		Workers:        o.Workers,
	}
}

type BatchRequest struct {
	Profiles []ProfilePayload `json:"profiles" validate:"required,min=1,dive"`
	Options  RunOptions       `json:"options"`
}

// BatchHandler serves consistency batch runs.
type BatchHandler struct {
	batches *service.BatchService
	logger  *zap.Logger
}

func NewBatchHandler(batches *service.BatchService, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{batches: batches, logger: logger}
}

// CreateBatch handles POST /v1/batches.
func (h *BatchHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	profiles := make([]domain.StudentProfile, 0, len(req.Profiles))
	for i := range req.Profiles {
		profile, err := req.Profiles[i].toDomain()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		profiles = append(profiles, profile)
	}

	report, err := h.batches.Run(r.Context(), profiles, req.Options.toConfig())
	if err != nil {
		if errors.Is(err, service.ErrEmptyBatch) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("batch run failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "batch run failed")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
