package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/salespoint-api/internal/domain/enum"
	"github.com/sangkips/salespoint-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUsername extracts the username from the Gin context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get("username")
	if !exists {
		return ""
	}
	return username.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, ok := roleVal.(enum.Role)
	if !ok {
		return ""
	}
	return role
}

// paginationFromQuery builds pagination params from query string
func paginationFromQuery(c *gin.Context) *pagination.PaginationParams {
	params := &pagination.PaginationParams{}
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}
