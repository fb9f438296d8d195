package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/api/handlers"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/backup"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/internal/domain/user"
)

type stubBackupService struct{}

func (stubBackupService) Backup(ctx context.Context, actor user.Actor) (*backup.Document, error) {
	return &backup.Document{Timestamp: "2026-08-29T00:00:00Z"}, nil
}

func (stubBackupService) Restore(ctx context.Context, actor user.Actor, doc *backup.Document, platform string) (*backup.Report, error) {
	return &backup.Report{}, nil
}

// identityAs stands in for the JWT middleware and stamps the request with a
// fixed caller.
func identityAs(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("email", "ops@example.com")
		c.Set("role", role)
		c.Next()
	}
}

func newBackupRouter(role user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes := NewBackupRoutes(handlers.NewBackupHandler(stubBackupService{}), identityAs(role))
	routes.RegisterRoutes(router)
	return router
}

func TestBackupRoutesUnderAdminPrefix(t *testing.T) {
	router := newBackupRouter(user.RoleSuperadmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/backup", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// The restore route lives under the same prefix; an empty body is a
	// client error, not a routing miss.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/restore", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBackupRoutesRequireSuperadmin(t *testing.T) {
	router := newBackupRouter(user.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/backup", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
