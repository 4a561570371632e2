package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

func TestProduct_StockStatus(t *testing.T) {
	cases := []struct {
		name     string
		quantity int64
		minLevel int64
		want     string
	}{
		{"sobre el mínimo", 50, 10, entity.StockStatusInStock},
		{"justo en el mínimo", 10, 10, entity.StockStatusLowStock},
		{"bajo el mínimo", 3, 10, entity.StockStatusLowStock},
		{"agotado", 0, 10, entity.StockStatusOutOfStock},
		{"negativo por tipo correctivo", -2, 10, entity.StockStatusOutOfStock},
		{"sin mínimo configurado", 1, 0, entity.StockStatusInStock},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := &entity.Product{Quantity: c.quantity, MinStockLevel: c.minLevel}
			assert.Equal(t, c.want, p.StockStatus())
		})
	}
}
