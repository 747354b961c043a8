package assetclearance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	assetclearanceerrors "go-exitflow/internal/assetclearance/errors"
	"go-exitflow/internal/shared/apperror"
	"go-exitflow/internal/shared/checklist"
	"go-exitflow/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FormService is the slice of the exit-form service this stage needs.
type FormService interface {
	GetRef(ctx context.Context, id string) (workflow.FormRef, error)
	AdvanceStatus(ctx context.Context, id string, from, to workflow.Status, actorID string) error
}

type Service interface {
	Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitAssetClearanceRequest, editMode bool) (AssetClearanceResponse, error)
	GetByForm(ctx context.Context, sess workflow.Session, formID string) (AssetClearanceResponse, error)
}

type service struct {
	repo   Repository
	forms  FormService
	logger *zap.Logger
}

func NewService(repo Repository, forms FormService, logger ...*zap.Logger) Service {
	l := zap.L().Named("assetclearance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assetclearance.service")
	}
	return &service{repo: repo, forms: forms, logger: l}
}

func validCondition(condition string) bool {
	switch condition {
	case ConditionGood, ConditionAverage, ConditionOK, ConditionBad, ConditionNotReceived:
		return true
	}
	return false
}

func validateItems(items []AssetItem) error {
	defaults := make(map[string]bool, len(DefaultAssets))
	for _, label := range DefaultAssets {
		defaults[label] = false
	}

	for _, item := range items {
		if !validCondition(item.Condition) {
			return assetclearanceerrors.ErrInvalidCondition
		}
		// Bad and Not Received need an explanation for the recovery
		// follow-up
		if (item.Condition == ConditionBad || item.Condition == ConditionNotReceived) && item.Comment == "" {
			return assetclearanceerrors.ErrCommentRequired
		}
		if strings.Contains(item.Label, "#") || strings.Contains(item.Label, "||") ||
			strings.Contains(item.Comment, "#") || strings.Contains(item.Comment, "||") {
			return assetclearanceerrors.ErrReservedCharacters
		}
		if _, isDefault := defaults[item.Label]; isDefault {
			defaults[item.Label] = true
		}
	}

	for _, present := range defaults {
		if !present {
			return assetclearanceerrors.ErrMissingDefaultAsset
		}
	}
	return nil
}

func packItems(items []AssetItem) string {
	packed := make([]checklist.Item, len(items))
	for i, item := range items {
		packed[i] = checklist.Item{Label: item.Label, Status: item.Condition, Comment: item.Comment}
	}
	return checklist.Build(packed)
}

func unpackItems(data string) []AssetItem {
	parsed := checklist.Parse(data)
	items := make([]AssetItem, len(parsed))
	for i, entry := range parsed {
		items[i] = AssetItem{Label: entry.Label, Condition: entry.Status, Comment: entry.Comment}
	}
	return items
}

func (s *service) Submit(ctx context.Context, sess workflow.Session, formID string, req SubmitAssetClearanceRequest, editMode bool) (AssetClearanceResponse, error) {
	if err := validateItems(req.Items); err != nil {
		return AssetClearanceResponse{}, err
	}

	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return AssetClearanceResponse{}, err
	}
	if ref.Status.Stage() != workflow.StageAssetClearance {
		return AssetClearanceResponse{}, assetclearanceerrors.ErrWrongStage
	}

	hasExisting, err := s.repo.ExistsForForm(ctx, formID)
	if err != nil {
		return AssetClearanceResponse{}, err
	}
	if !workflow.CanEditStage(sess, ref, workflow.StageAssetClearance, hasExisting, editMode) {
		if hasExisting && !editMode {
			return AssetClearanceResponse{}, assetclearanceerrors.ErrAlreadySubmitted
		}
		return AssetClearanceResponse{}, assetclearanceerrors.ErrNotStageActor
	}

	clearedBy, err := uuid.Parse(sess.EmployeeID)
	if err != nil {
		return AssetClearanceResponse{}, apperror.ErrUnauthorized
	}
	formUUID, err := uuid.Parse(ref.ID)
	if err != nil {
		return AssetClearanceResponse{}, apperror.ErrInternal
	}

	clearance := &AssetClearance{
		ID:            uuid.New(),
		ExitFormID:    formUUID,
		ClearanceData: packItems(req.Items),
		ClearedBy:     clearedBy,
	}

	if err := s.repo.Upsert(ctx, clearance); err != nil {
		s.logger.Error("asset clearance persist failed", zap.String("exit_form_id", formID), zap.Error(err))
		return AssetClearanceResponse{}, err
	}

	if err := s.forms.AdvanceStatus(ctx, formID, ref.Status, workflow.StatusPendingOffboarding, sess.EmployeeID); err != nil {
		s.logger.Error("asset clearance saved but status advance failed",
			zap.String("exit_form_id", formID),
			zap.Error(err),
		)
		return AssetClearanceResponse{}, apperror.StatusAdvanceFailed(err)
	}

	s.logger.Info("asset clearance submitted",
		zap.String("exit_form_id", formID),
		zap.Int("asset_count", len(req.Items)),
	)

	return mapToResponse(clearance, int(workflow.StatusPendingOffboarding)), nil
}

func (s *service) GetByForm(ctx context.Context, sess workflow.Session, formID string) (AssetClearanceResponse, error) {
	ref, err := s.forms.GetRef(ctx, formID)
	if err != nil {
		return AssetClearanceResponse{}, err
	}
	if !workflow.CanView(sess, ref) {
		return AssetClearanceResponse{}, assetclearanceerrors.ErrNotViewable
	}

	clearance, err := s.repo.FindByFormID(ctx, formID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AssetClearanceResponse{}, assetclearanceerrors.ErrClearanceNotFound
		}
		return AssetClearanceResponse{}, err
	}
	return mapToResponse(clearance, int(ref.Status)), nil
}

func mapToResponse(clearance *AssetClearance, formStatus int) AssetClearanceResponse {
	submittedAt := clearance.UpdatedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	return AssetClearanceResponse{
		ID:          clearance.ID.String(),
		ExitFormID:  clearance.ExitFormID.String(),
		Items:       unpackItems(clearance.ClearanceData),
		ClearedBy:   clearance.ClearedBy.String(),
		SubmittedAt: submittedAt.UTC().Format(time.RFC3339),
		FormStatus:  formStatus,
	}
}
