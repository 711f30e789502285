package dto

// AdjustStockRequest body para PATCH|POST /api/stock/adjust.
type AdjustStockRequest struct {
	BranchID  string `json:"branchId"`
	ProductID string `json:"productId"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason,omitempty"` // default "adjustment"
}

// AdjustStockResponse cantidad vigente tras el ajuste.
type AdjustStockResponse struct {
	OnHand int64 `json:"onHand"`
}

// StockRowResponse fila de stock con datos del producto.
type StockRowResponse struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	OnHand    int64  `json:"onHand"`
}
