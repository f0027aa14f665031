package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/presentation/http/middleware"
	"github.com/sangkips/shopflow/pkg/pagination"
)

// GetUser extracts the authenticated user from the Gin context
func GetUser(c *gin.Context) *entity.User {
	value, exists := c.Get(middleware.ContextUser)
	if !exists {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}

// GetUsername extracts the authenticated username from the Gin context
func GetUsername(c *gin.Context) string {
	return c.GetString(middleware.ContextUsername)
}

// GetPagination reads ?page= and ?per_page=, keeping the defaults for
// anything missing or malformed
func GetPagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	return params
}
