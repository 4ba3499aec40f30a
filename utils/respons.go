package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondBindingError turns a ShouldBindJSON failure into a 400 with a
// field -> message map when the underlying error is a validation error,
// falling back to a plain message otherwise.
func RespondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, JSONResponse{
			Status:  false,
			Message: "validation failed",
			Data:    gin.H{"errors": fields},
		})
		return
	}
	RespondError(c, http.StatusBadRequest, err)
}
