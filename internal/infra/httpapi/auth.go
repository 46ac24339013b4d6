package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rider_slip_service/internal/domain/branch"
	idb "rider_slip_service/internal/infra/database"
)

const (
	headerAdminSecret = "X-Admin-Secret"
	headerBranchCode  = "X-Branch-Code"

	identityKey = "identity"

	RoleAdmin         = "admin"
	RoleBranchManager = "branch_manager"
)

// Identity is the authenticated caller, resolved before any workflow runs.
// Downstream code trusts it and does not re-authenticate.
type Identity struct {
	Role       string
	BranchCode string
}

// Authenticator resolves the caller's identity from request headers: a valid
// admin secret grants the admin role, a known branch code grants the branch
// manager role.
type Authenticator struct {
	branchRepo  branch.Repository
	adminSecret string
	logger      *logrus.Entry
}

func NewAuthenticator(branchRepo branch.Repository, adminSecret string, logger *logrus.Entry) *Authenticator {
	return &Authenticator{branchRepo: branchRepo, adminSecret: adminSecret, logger: logger}
}

// Middleware authenticates the request and stores the identity in the gin
// context. Requests with neither credential are rejected.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret := c.GetHeader(headerAdminSecret); secret != "" {
			if subtle.ConstantTimeCompare([]byte(secret), []byte(a.adminSecret)) == 1 {
				c.Set(identityKey, Identity{Role: RoleAdmin})
				c.Next()
				return
			}
			a.logger.Warn("Invalid admin secret presented")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin credentials"})
			return
		}

		if code := c.GetHeader(headerBranchCode); code != "" {
			b, err := a.branchRepo.GetByCode(c.Request.Context(), code)
			if err != nil {
				if err == idb.ErrBranchNotFound {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid branch code"})
					return
				}
				a.logger.WithError(err).Error("Branch lookup failed during authentication")
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication backend unavailable"})
				return
			}
			c.Set(identityKey, Identity{Role: RoleBranchManager, BranchCode: b.Code})
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
	}
}

// RequireAdmin aborts with 403 unless the caller is the admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerIdentity(c).Role != RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// RequireBranch aborts with 403 unless the caller is a branch manager.
func RequireBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerIdentity(c).Role != RoleBranchManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "branch access required"})
			return
		}
		c.Next()
	}
}

// CallerIdentity returns the identity stored by the middleware.
func CallerIdentity(c *gin.Context) Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}
	}
	id, _ := v.(Identity)
	return id
}
