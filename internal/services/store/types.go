package store

// FinancialSummary is a pure projection of a store's ledger, with all
// dual-currency totals also folded into EUR equivalents.
type FinancialSummary struct {
	StoreID           uint    `json:"store_id"`
	CreditLimitEUR    float64 `json:"credit_limit_eur"`
	CurrentBalanceEUR float64 `json:"current_balance_eur"`
	AvailableCredit   float64 `json:"available_credit_eur"`
	TotalPurchasesEUR float64 `json:"total_purchases_eur"`
	TotalPurchasesSYP float64 `json:"total_purchases_syp"`
	TotalPaymentsEUR  float64 `json:"total_payments_eur"`
	TotalPaymentsSYP  float64 `json:"total_payments_syp"`
	PurchasesEURTotal float64 `json:"purchases_eur_equivalent"`
	PaymentsEURTotal  float64 `json:"payments_eur_equivalent"`
	CommissionRate    float64 `json:"commission_rate"`
	PaymentTerms      string  `json:"payment_terms"`
}

// PerformanceStats is a pure projection of a store's order history.
type PerformanceStats struct {
	StoreID           uint    `json:"store_id"`
	TotalOrders       int     `json:"total_orders"`
	CompletedOrders   int     `json:"completed_orders"`
	CancelledOrders   int     `json:"cancelled_orders"`
	CompletionRate    float64 `json:"completion_rate"`
	PaymentRate       float64 `json:"payment_rate"`
	AverageOrderValue float64 `json:"average_order_value"`
	PerformanceRating float64 `json:"performance_rating"`
}
