package handlers

import (
	paymentRequest "github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/dto/payment/request"
	paymentResponse "github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/dto/payment/response"
	"github.com/cryptolink/cryptolink-payment-service/internal/delivery/http/response"
	paymentdto "github.com/cryptolink/cryptolink-payment-service/internal/usecase/dto/payment"
	usecase "github.com/cryptolink/cryptolink-payment-service/internal/usecase/payment"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	uc usecase.PaymentUsecase
}

func NewPaymentHandler(uc usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Validate runs the gate checks without creating anything. The payment
// page calls it on load to decide whether to render the form at all.
func (h *PaymentHandler) Validate(c *gin.Context) {
	var req paymentRequest.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	out, err := h.uc.ValidatePaymentRequest(req.APIKey, req.OrderID)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Data(c, paymentResponse.FromValidationOutput(out))
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var req paymentRequest.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	out, err := h.uc.CreatePayment(c.Request.Context(), &paymentdto.CreatePaymentInput{
		APIKey:   req.APIKey,
		OrderID:  req.OrderID,
		CoinType: req.CoinType,
		Network:  req.Network,
		Buyer: paymentdto.BuyerInfo{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
		},
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, paymentResponse.FromPaymentOutput(out))
}

func (h *PaymentHandler) Details(c *gin.Context) {
	out, err := h.uc.GetPaymentDetails(c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Data(c, paymentResponse.FromPaymentOutput(out))
}

// Status is the poll endpoint: a small payload the payment page hits
// every few seconds while the record is pending.
func (h *PaymentHandler) Status(c *gin.Context) {
	out, err := h.uc.GetPaymentStatus(c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Data(c, paymentResponse.StatusResponse{
		PayID:       out.PayID,
		Status:      string(out.Status),
		Expired:     out.Expired,
		ExpiresInMs: out.ExpiresInMs,
	})
}

func (h *PaymentHandler) Retry(c *gin.Context) {
	var req paymentRequest.RetryPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	out, err := h.uc.RetryPayment(c.Request.Context(), &paymentdto.RetryPaymentInput{
		OldPayID:  c.Param("id"),
		CoinType:  req.CoinType,
		Network:   req.Network,
		ProductID: req.ProductID,
		Buyer: paymentdto.BuyerInfo{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
		},
	})
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, paymentResponse.FromPaymentOutput(out))
}

func (h *PaymentHandler) RetryChain(c *gin.Context) {
	chain, err := h.uc.GetRetryChain(c.Param("id"))
	if err != nil {
		response.Err(c, err)
		return
	}

	outputs := make([]paymentResponse.PaymentResponse, len(chain))
	for i, out := range chain {
		outputs[i] = paymentResponse.FromPaymentOutput(out)
	}
	response.Data(c, outputs)
}

func (h *PaymentHandler) CreatePayLink(c *gin.Context) {
	var req paymentRequest.CreatePayLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	link, err := h.uc.CreatePayLink(req.APIKey, req.OrderID)
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Created(c, paymentResponse.FromPayLink(link))
}

func (h *PaymentHandler) ResolvePayLink(c *gin.Context) {
	out, err := h.uc.ResolvePayLink(c.Param("code"))
	if err != nil {
		response.Err(c, err)
		return
	}
	response.Data(c, paymentResponse.FromValidationOutput(out))
}
