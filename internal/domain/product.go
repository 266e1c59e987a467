package domain

import "time"

// Product описывает товар каталога.
// Stock меняется только алгоритмом сверки заказа, напрямую не пишется.
type Product struct {
	ID          int64
	SKU         string
	Name        string
	ImportPrice int64 // Закупочная цена в копейках
	SalePrice   int64 // Цена продажи в копейках
	Stock       int64
	CategoryID  int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(sku, name string, importPrice, salePrice, stock, categoryID int64) *Product {
	return &Product{
		SKU:         sku,
		Name:        name,
		ImportPrice: importPrice,
		SalePrice:   salePrice,
		Stock:       stock,
		CategoryID:  categoryID,
	}
}
