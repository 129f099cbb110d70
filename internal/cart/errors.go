package cart

import "errors"

var (
	ErrOutOfStock = errors.New("product is out of stock")
	ErrStockLimit = errors.New("quantity exceeds available stock")
)
