package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrEmptyParameter   = errors.New("empty parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ParseIDParam reads a UUID path parameter.
func ParseIDParam(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", ErrInvalidParameter
	}
	return id.String(), nil
}

// ParseQueryIntParam reads a positive integer query parameter, falling back
// to def when it is absent.
func ParseQueryIntParam(c *gin.Context, param string, def int) (int, error) {
	valStr := c.Query(param)
	if valStr == "" {
		return def, nil
	}
	v, err := strconv.Atoi(valStr)
	if err != nil || v < 1 {
		return 0, ErrInvalidParameter
	}
	return v, nil
}
