package response

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/dopebook-backend/internal/platform/apierr"
)

// RespondServiceError writes err with the status its aggregate code maps to.
func RespondServiceError(c *gin.Context, err error) {
	ae := apierr.FromError(err)
	RespondError(c, ae.Status, ae.Code, ae.Err)
}
