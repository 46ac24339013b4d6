package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/app"
	"rider_slip_service/internal/domain/slip"
	idb "rider_slip_service/internal/infra/database"
)

// maxArtifactSize bounds uploaded slip images.
const maxArtifactSize = 10 << 20 // 10 MB

// SlipHandler serves the branch-facing endpoints: slip submission, week and
// commission preview queries, and change requests.
type SlipHandler struct {
	submissions *app.SubmissionService
	admin       *app.AdminService
	intake      *app.IntakeService
	logger      *logrus.Entry
}

func NewSlipHandler(submissions *app.SubmissionService, admin *app.AdminService, intake *app.IntakeService, logger *logrus.Entry) *SlipHandler {
	return &SlipHandler{submissions: submissions, admin: admin, intake: intake, logger: logger}
}

// SubmitSlip handles POST /api/v1/slips (multipart form).
func (h *SlipHandler) SubmitSlip(c *gin.Context) {
	identity := CallerIdentity(c)

	riderID, err := strconv.ParseInt(c.PostForm("rider_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rider_id must be a number"})
		return
	}

	category := slip.Category(c.PostForm("category"))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be 'cash' or 'online'"})
		return
	}

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a number"})
		return
	}

	req := app.IntakeRequest{
		BranchCode:    identity.BranchCode,
		RiderID:       riderID,
		Category:      category,
		Quantity:      quantity,
		TransactionID: c.PostForm("transaction_id"),
		ManagerName:   c.PostForm("manager_name"),
		WeekLabel:     c.PostForm("week_label"),
	}

	fileHeader, err := c.FormFile("artifact")
	if err == nil {
		if fileHeader.Size > maxArtifactSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "artifact exceeds the size limit"})
			return
		}
		file, openErr := fileHeader.Open()
		if openErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read artifact"})
			return
		}
		defer file.Close()
		req.Artifact, err = io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read artifact"})
			return
		}
		req.ArtifactName = fileHeader.Filename
	}

	entry, err := h.submissions.SubmitSlip(c.Request.Context(), req)
	if err != nil {
		h.sendIntakeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSlipResponse(entry))
}

// CheckArtifact handles POST /api/v1/artifact-checks (multipart). It reports
// whether the artifact was already accepted for the rider, so the UI can warn
// before a full submission.
func (h *SlipHandler) CheckArtifact(c *gin.Context) {
	identity := CallerIdentity(c)

	riderID, err := strconv.ParseInt(c.PostForm("rider_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rider_id must be a number"})
		return
	}

	fileHeader, err := c.FormFile("artifact")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a slip image or PDF is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read artifact"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read artifact"})
		return
	}

	seen, err := h.intake.SeenArtifact(c.Request.Context(), identity.BranchCode, riderID, data)
	if err != nil {
		h.logger.WithError(err).Error("Artifact check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "duplicate registry is unavailable, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"seen": seen})
}

// ListSlips handles GET /api/v1/slips?week=<label>. Branch managers see
// their own slips, the admin sees every branch's.
func (h *SlipHandler) ListSlips(c *gin.Context) {
	weekLabel := c.Query("week")
	if weekLabel == "" {
		weeks := h.intake.RecentWeeks()
		weekLabel = weeks[len(weeks)-1].Label()
	}

	identity := CallerIdentity(c)
	var (
		entries []*slip.Entry
		err     error
	)
	if identity.Role == RoleAdmin {
		entries, err = h.admin.ListWeekSlips(c.Request.Context(), weekLabel)
	} else {
		entries, err = h.submissions.ListBranchSlips(c.Request.Context(), identity.BranchCode, weekLabel)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to list slips")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list slips"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"week": weekLabel, "slips": toSlipResponses(entries)})
}

// Weeks handles GET /api/v1/weeks.
func (h *SlipHandler) Weeks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"weeks": toWeekResponses(h.intake.RecentWeeks())})
}

// CommissionPreview handles GET /api/v1/commission?category=&quantity=.
func (h *SlipHandler) CommissionPreview(c *gin.Context) {
	category := slip.Category(c.Query("category"))
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a number"})
		return
	}

	amount, err := h.intake.CommissionPreview(category, quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":        string(category),
		"quantity":        quantity,
		"commissionMinor": amount,
	})
}

// SubmitChangeRequest handles POST /api/v1/change-requests.
func (h *SlipHandler) SubmitChangeRequest(c *gin.Context) {
	identity := CallerIdentity(c)

	var body struct {
		SubmittedBy string `json:"submittedBy" binding:"required"`
		Message     string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submittedBy and message are required"})
		return
	}

	cr, err := h.submissions.SubmitChangeRequest(c.Request.Context(), identity.BranchCode, body.SubmittedBy, body.Message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to submit change request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit change request"})
		return
	}

	c.JSON(http.StatusCreated, toChangeRequestResponse(cr))
}

// ListOwnChangeRequests handles GET /api/v1/change-requests for branches.
func (h *SlipHandler) ListOwnChangeRequests(c *gin.Context) {
	identity := CallerIdentity(c)
	requests, err := h.submissions.ListBranchChangeRequests(c.Request.Context(), identity.BranchCode)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list change requests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list change requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changeRequests": toChangeRequestResponses(requests)})
}

// sendIntakeError maps the intake failure taxonomy to distinct, actionable
// HTTP responses. Duplicate submissions must never look like success.
func (h *SlipHandler) sendIntakeError(c *gin.Context, err error) {
	var storageErr *app.StorageError
	var registryErr *app.RegistryError

	switch {
	case errors.Is(err, app.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
	case errors.Is(err, app.ErrInvalidTransactionID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction identifier is invalid for the slip category"})
	case errors.Is(err, app.ErrMissingArtifact):
		c.JSON(http.StatusBadRequest, gin.H{"error": "a slip image or PDF is required"})
	case errors.Is(err, app.ErrInvalidWeek):
		c.JSON(http.StatusBadRequest, gin.H{"error": "week label is not an open reporting week"})
	case errors.Is(err, app.ErrDuplicateArtifact):
		c.JSON(http.StatusConflict, gin.H{"error": "this slip image was already submitted"})
	case errors.Is(err, app.ErrRiderNotInBranch):
		c.JSON(http.StatusForbidden, gin.H{"error": "rider does not belong to your branch"})
	case errors.Is(err, idb.ErrRiderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "rider not found"})
	case errors.As(err, &storageErr):
		h.logger.WithError(err).Error("Artifact storage failure during intake")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "artifact storage is unavailable, please retry"})
	case errors.As(err, &registryErr):
		h.logger.WithError(err).Error("Registry failure during intake")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "duplicate registry is unavailable, please retry"})
	default:
		h.logger.WithError(err).Error("Slip submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "slip submission failed"})
	}
}
