// Package response is the single place HTTP responses are shaped, so
// every handler renders the same envelope and the same error mapping.
package response

import (
	"errors"
	"net/http"

	"github.com/cryptolink/cryptolink-payment-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	Success = "success"
	Error   = "error"
)

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: Success,
		Data:   data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status: Success,
		Data:   data,
	})
}

func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Status:  Error,
		Message: err.Error(),
	})
}

// Err maps domain errors onto HTTP statuses. Validation gate
// rejections carry their code verbatim: the page renders the precise
// message from it.
func Err(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusUnprocessableEntity
		if verr.Code == domain.CodeNotFound {
			status = http.StatusNotFound
		}
		c.AbortWithStatusJSON(status, Response{
			Status:  Error,
			Code:    string(verr.Code),
			Message: verr.Message,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrPayLinkNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, Response{
			Status:  Error,
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrRetryStillPending),
		errors.Is(err, domain.ErrRetryNotFailed),
		errors.Is(err, domain.ErrRetryInFlight),
		errors.Is(err, domain.ErrPaymentExpired):
		c.AbortWithStatusJSON(http.StatusConflict, Response{
			Status:  Error,
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidWalletAddress):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Response{
			Status:  Error,
			Message: err.Error(),
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
			Status:  Error,
			Message: "internal error",
		})
	}
}
