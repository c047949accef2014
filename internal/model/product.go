package model

import "time"

type Product struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null;index" json:"name"`
	Description       string    `gorm:"type:text" json:"description,omitempty"`
	Price             float64   `gorm:"not null" json:"price"`
	Stock             int       `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int       `gorm:"not null;default:5" json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LowStock reports whether the product sits at or below its threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= p.LowStockThreshold
}
