package handlers

import (
	paymentRequest "github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/dto/payment/request"
	paymentResponse "github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/dto/payment/response"
	"github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/response"
	usecase "github.com/cryptolink/cryptolink-payment-service/internal/usecase/payment"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the manual overrides. Overrides that lose the
// race against automatic verification still answer 200 with result
// "already_resolved": from the operator's side nothing is wrong, the
// record just resolved on its own.
type AdminHandler struct {
	uc usecase.PaymentUsecase
}

func NewAdminHandler(uc usecase.PaymentUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) Approve(c *gin.Context) {
	var req paymentRequest.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	payID := c.Param("id")
	outcome, err := h.uc.AdminApprove(payID, req.TxHash)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Data(c, paymentResponse.OverrideResponse{
		PayID:  payID,
		Result: string(outcome),
	})
}

func (h *AdminHandler) Reject(c *gin.Context) {
	var req paymentRequest.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	payID := c.Param("id")
	outcome, err := h.uc.AdminReject(payID, req.Reason)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Data(c, paymentResponse.OverrideResponse{
		PayID:  payID,
		Result: string(outcome),
	})
}

// RunVerification triggers one verification pass on demand; the same
// pass the interval worker runs.
func (h *AdminHandler) RunVerification(c *gin.Context) {
	out, err := h.uc.RunVerificationPass(c.Request.Context(), "manual")
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Data(c, paymentResponse.VerificationPassResponse{
		Checked:   out.Checked,
		Completed: out.Completed,
		Expired:   out.Expired,
	})
}
