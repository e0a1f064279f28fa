package request

type ValidateRequest struct {
	APIKey  string `json:"api_key" binding:"required"`
	OrderID string `json:"order_id" binding:"required"`
}

type CreatePaymentRequest struct {
	APIKey        string `json:"api_key" binding:"required"`
	OrderID       string `json:"order_id" binding:"required"`
	CoinType      string `json:"coin_type" binding:"required"`
	Network       string `json:"network" binding:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

type RetryPaymentRequest struct {
	CoinType      string `json:"coin_type" binding:"required"`
	Network       string `json:"network" binding:"required"`
	ProductID     string `json:"product_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

type CreatePayLinkRequest struct {
	APIKey  string `json:"api_key" binding:"required"`
	OrderID string `json:"order_id" binding:"required"`
}

type ApproveRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}
