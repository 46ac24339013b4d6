package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/app"
	idb "rider_slip_service/internal/infra/database"
)

// AdminHandler serves the admin-only endpoints: branch and rider management,
// slip review, and change request decisions.
type AdminHandler struct {
	admin  *app.AdminService
	logger *logrus.Entry
}

func NewAdminHandler(admin *app.AdminService, logger *logrus.Entry) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// AddBranch handles POST /api/v1/branches.
func (h *AdminHandler) AddBranch(c *gin.Context) {
	var body struct {
		Code string `json:"code" binding:"required"`
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and name are required"})
		return
	}

	b, err := h.admin.AddBranch(c.Request.Context(), body.Code, body.Name)
	if err != nil {
		switch err {
		case app.ErrBranchAlreadyExists:
			c.JSON(http.StatusConflict, gin.H{"error": "branch code already exists"})
		default:
			h.logger.WithError(err).Error("Failed to add branch")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add branch"})
		}
		return
	}

	c.JSON(http.StatusCreated, branchResponse{Code: b.Code, Name: b.Name, CreatedAt: b.CreatedAt})
}

// ListBranches handles GET /api/v1/branches.
func (h *AdminHandler) ListBranches(c *gin.Context) {
	branches, err := h.admin.ListBranches(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list branches")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list branches"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": toBranchResponses(branches)})
}

// AddRider handles POST /api/v1/branches/:code/riders.
func (h *AdminHandler) AddRider(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	r, err := h.admin.AddRider(c.Request.Context(), c.Param("code"), body.Name)
	if err != nil {
		switch err {
		case idb.ErrBranchNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "branch not found"})
		default:
			h.logger.WithError(err).Error("Failed to add rider")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add rider"})
		}
		return
	}

	c.JSON(http.StatusCreated, riderResponse{ID: r.ID, BranchCode: r.BranchCode, Name: r.Name, IsActive: r.IsActive})
}

// ListRiders handles GET /api/v1/branches/:code/riders.
func (h *AdminHandler) ListRiders(c *gin.Context) {
	riders, err := h.admin.ListRiders(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list riders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list riders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"riders": toRiderResponses(riders)})
}

// ReviewSlip handles POST /api/v1/slips/:id/accept and /reject.
func (h *AdminHandler) ReviewSlip(accept bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slip id must be a number"})
			return
		}

		entry, err := h.admin.ReviewSlip(c.Request.Context(), id, accept)
		if err != nil {
			switch err {
			case idb.ErrSlipNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "slip not found"})
			case app.ErrSlipNotReviewable:
				c.JSON(http.StatusConflict, gin.H{"error": "slip is not awaiting review"})
			default:
				h.logger.WithError(err).Error("Failed to review slip")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review slip"})
			}
			return
		}

		c.JSON(http.StatusOK, toSlipResponse(entry))
	}
}

// ListPendingChangeRequests handles GET /api/v1/change-requests/pending.
func (h *AdminHandler) ListPendingChangeRequests(c *gin.Context) {
	requests, err := h.admin.ListPendingChangeRequests(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list pending change requests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pending change requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changeRequests": toChangeRequestResponses(requests)})
}

// DecideChangeRequest handles POST /api/v1/change-requests/:id/approve and
// /reject.
func (h *AdminHandler) DecideChangeRequest(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "change request id must be a number"})
			return
		}

		cr, err := h.admin.DecideChangeRequest(c.Request.Context(), id, approve)
		if err != nil {
			switch err {
			case idb.ErrChangeRequestNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "change request not found"})
			case app.ErrRequestAlreadyDecided:
				c.JSON(http.StatusConflict, gin.H{"error": "change request was already decided"})
			default:
				h.logger.WithError(err).Error("Failed to decide change request")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decide change request"})
			}
			return
		}

		c.JSON(http.StatusOK, toChangeRequestResponse(cr))
	}
}
