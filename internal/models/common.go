// internal/models/common.go
package models

// Enums
type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

func (m MediaType) Valid() bool {
	return m == MediaTypeImage || m == MediaTypeVideo
}

// UnsoldBuyerID is the sentinel stored in products.buyers_id until the
// product has been purchased.
const UnsoldBuyerID int64 = 0
