package paymentdto

type BuyerInfo struct {
	CustomerName  string
	CustomerEmail string
}

type CreatePaymentInput struct {
	APIKey   string
	OrderID  string
	CoinType string
	Network  string
	Buyer    BuyerInfo
}

type RetryPaymentInput struct {
	OldPayID  string
	CoinType  string
	Network   string
	ProductID string
	Buyer     BuyerInfo
}
