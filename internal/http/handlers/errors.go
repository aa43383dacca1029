package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/dopebook-backend/internal/ballistics/units"
)

var (
	errSessionNotFound = errors.New("session not found")
	errMissingOwner    = errors.New("missing owner")
	errBadID           = errors.New("invalid id")
)

func errBadQuery(key string) error {
	return fmt.Errorf("invalid query parameter %q", key)
}

// unitsParam is the unit system inbound readings are expressed in. Metric when absent.
func unitsParam(c *gin.Context) units.System {
	return units.ParseSystem(c.Query("units"))
}
