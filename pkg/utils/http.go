package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var ErrEmptyParameter = errors.New("empty parameter")

func ParseQueryUintParam(c *gin.Context, param string) (uint, error) {
	valStr := c.Query(param)
	if valStr == "" {
		return 0, ErrEmptyParameter
	}
	valUint64, err := strconv.ParseUint(valStr, 10, 64)
	return uint(valUint64), err
}

// QueryInt reads an integer query parameter, returning fallback when it is
// absent or malformed.
func QueryInt(c *gin.Context, param string, fallback int) int {
	valStr := c.Query(param)
	if valStr == "" {
		return fallback
	}
	n, err := strconv.Atoi(valStr)
	if err != nil {
		return fallback
	}
	return n
}
