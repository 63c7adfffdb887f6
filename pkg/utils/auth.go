package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formpilot/pkg/types"
)

var ErrNoClaims = errors.New("user claims not found in context")

var GetUserIDFromContext = func(c *gin.Context) (string, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return "", ErrNoClaims
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return "", errors.New("invalid user claims type")
	}

	id := claims.SubjectID()
	if id == "" {
		return "", ErrNoClaims
	}
	return id, nil
}
