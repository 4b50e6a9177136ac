package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesscast/studio-admin/internal/core/domain"
	"github.com/accesscast/studio-admin/internal/core/ports"
)

// SettingsHandler handles the admin-only settings endpoints: database
// backups and the IP allow-list.
type SettingsHandler struct {
	backups   ports.BackupService
	allowlist ports.AllowlistService
}

func NewSettingsHandler(backups ports.BackupService, allowlist ports.AllowlistService) *SettingsHandler {
	return &SettingsHandler{backups: backups, allowlist: allowlist}
}

type triggerBackupResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

type backupJobResponse struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	EnqueuedAt string `json:"enqueued_at"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
	Error      string `json:"error,omitempty"`
}

type listBackupsResponse struct {
	Archives []domain.BackupArchive `json:"archives"`
	Jobs     []backupJobResponse    `json:"jobs"`
}

type allowlistEntryRequest struct {
	CIDR string `json:"cidr" validate:"required"`
	Note string `json:"note,omitempty"`
}

type replaceAllowlistRequest struct {
	Entries []allowlistEntryRequest `json:"entries"`
}

type allowlistResponse struct {
	Entries  []domain.AllowlistEntry `json:"entries"`
	Enforced bool                    `json:"enforced"`
}

// TriggerBackup handles POST /v1/settings/backups — enqueues a backup job
// and returns 202 with the job id. A second trigger while one is queued or
// running is rejected with 409.
//
// @Summary      Trigger a database backup
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  triggerBackupResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/settings/backups [post]
func (h *SettingsHandler) TriggerBackup(c echo.Context) error {
	jobID, err := h.backups.Trigger(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, triggerBackupResponse{
		JobID:   jobID,
		Message: "backup enqueued",
	})
}

// ListBackups handles GET /v1/settings/backups — archives on disk plus
// recent job runner state.
//
// @Summary      List backup archives and job history
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listBackupsResponse
// @Router       /v1/settings/backups [get]
func (h *SettingsHandler) ListBackups(c echo.Context) error {
	archives, jobs, err := h.backups.List(c.Request().Context())
	if err != nil {
		return err
	}

	jobResponses := make([]backupJobResponse, len(jobs))
	for i, job := range jobs {
		resp := backupJobResponse{
			ID:         job.ID,
			State:      string(job.State),
			EnqueuedAt: job.EnqueuedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Error:      job.Error,
		}
		if !job.StartedAt.IsZero() {
			resp.StartedAt = job.StartedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
		if !job.FinishedAt.IsZero() {
			resp.FinishedAt = job.FinishedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
		jobResponses[i] = resp
	}

	if archives == nil {
		archives = []domain.BackupArchive{}
	}
	return c.JSON(http.StatusOK, listBackupsResponse{
		Archives: archives,
		Jobs:     jobResponses,
	})
}

// GetAllowlist handles GET /v1/settings/allowlist.
//
// @Summary      Get the IP allow-list
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  allowlistResponse
// @Router       /v1/settings/allowlist [get]
func (h *SettingsHandler) GetAllowlist(c echo.Context) error {
	entries, err := h.allowlist.List(c.Request().Context())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AllowlistEntry{}
	}
	return c.JSON(http.StatusOK, allowlistResponse{
		Entries:  entries,
		Enforced: h.allowlist.Enforced(),
	})
}

// ReplaceAllowlist handles PUT /v1/settings/allowlist — the list is small
// and edited as a unit, so the endpoint replaces it wholesale. Any invalid
// CIDR rejects the whole request.
//
// @Summary      Replace the IP allow-list
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      replaceAllowlistRequest  true  "Complete allow-list"
// @Success      200   {object}  allowlistResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/settings/allowlist [put]
func (h *SettingsHandler) ReplaceAllowlist(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req replaceAllowlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	inputs := make([]ports.AllowlistInput, len(req.Entries))
	for i, e := range req.Entries {
		inputs[i] = ports.AllowlistInput{CIDR: e.CIDR, Note: e.Note}
	}

	entries, err := h.allowlist.Replace(c.Request().Context(), inputs, userID)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AllowlistEntry{}
	}
	return c.JSON(http.StatusOK, allowlistResponse{
		Entries:  entries,
		Enforced: h.allowlist.Enforced(),
	})
}
