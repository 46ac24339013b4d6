package httpapi

import (
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine with authentication and all routes.
func NewRouter(auth *Authenticator, slips *SlipHandler, admin *AdminHandler) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = maxArtifactSize

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Rider Slip Collection",
		})
	})

	api := router.Group("/api/v1", auth.Middleware())
	{
		api.GET("/weeks", slips.Weeks)
		api.GET("/commission", slips.CommissionPreview)
		api.GET("/slips", slips.ListSlips)

		branchOnly := api.Group("", RequireBranch())
		{
			branchOnly.POST("/slips", slips.SubmitSlip)
			branchOnly.POST("/artifact-checks", slips.CheckArtifact)
			branchOnly.POST("/change-requests", slips.SubmitChangeRequest)
			branchOnly.GET("/change-requests", slips.ListOwnChangeRequests)
		}

		adminOnly := api.Group("", RequireAdmin())
		{
			adminOnly.POST("/branches", admin.AddBranch)
			adminOnly.GET("/branches", admin.ListBranches)
			adminOnly.POST("/branches/:code/riders", admin.AddRider)
			adminOnly.GET("/branches/:code/riders", admin.ListRiders)
			adminOnly.POST("/slips/:id/accept", admin.ReviewSlip(true))
			adminOnly.POST("/slips/:id/reject", admin.ReviewSlip(false))
			adminOnly.GET("/change-requests/pending", admin.ListPendingChangeRequests)
			adminOnly.POST("/change-requests/:id/approve", admin.DecideChangeRequest(true))
			adminOnly.POST("/change-requests/:id/reject", admin.DecideChangeRequest(false))
		}
	}

	return router
}
