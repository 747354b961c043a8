package exitworkflow

import (
	"go-exitflow/internal/exitform"
	"go-exitflow/internal/workflow"
)

// StageRecord is one stage's slot in the composed view. Data carries the
// stage's own response DTO when a record exists, nil otherwise.
type StageRecord struct {
	Stage     string `json:"stage"`
	Step      int    `json:"step"`
	Submitted bool   `json:"submitted"`
	Data      any    `json:"data,omitempty"`
}

// WorkflowView is the full reconstruction of one exit workflow for one
// viewer. It is rebuilt from storage on every request; nothing here is
// cached across employees or sessions.
type WorkflowView struct {
	Form exitform.ExitFormResponse `json:"form"`

	Status            int    `json:"status"`
	StatusLabel       string `json:"status_label"`
	Terminal          bool   `json:"terminal"`
	Blocked           bool   `json:"blocked"`
	CurrentStage      string `json:"current_stage"`
	ProgressStep      int    `json:"progress_step"`
	ProgressSteps     int    `json:"progress_steps"`
	OwnerProgressStep int    `json:"owner_progress_step"`

	Capabilities workflow.Capabilities `json:"capabilities"`

	// ActiveStage is the stage editor to auto-open for this viewer, empty
	// when the viewer is not the acting role for the current status.
	ActiveStage          string `json:"active_stage,omitempty"`
	ActiveStageHasRecord bool   `json:"active_stage_has_record"`

	Stages []StageRecord `json:"stages"`
}

// StepView is the result of navigating to one progress-bar node.
type StepView struct {
	Step     int         `json:"step"`
	Stage    string      `json:"stage"`
	ReadOnly bool        `json:"read_only"`
	Record   StageRecord `json:"record"`
}
