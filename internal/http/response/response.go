package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactbook-backend/internal/platform/apierr"
)

const internalMessage = "internal server error"

type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondError writes err as {"error": msg, "code": code}. Store failures keep
// their cause out of the body; it is attached to the gin context for logging.
func RespondError(c *gin.Context, err error) {
	if err == nil {
		err = apierr.New(http.StatusInternalServerError, apierr.CodeStore, nil)
	}
	_ = c.Error(err)
	ae := apierr.From(err)
	msg := ae.Error()
	if ae.Status >= http.StatusInternalServerError {
		msg = internalMessage
	}
	c.AbortWithStatusJSON(ae.Status, ErrorBody{Error: msg, Code: ae.Code})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
