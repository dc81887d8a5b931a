package model

// AlertReport partitions the catalog into independent views. A product may
// appear in several partitions at once, e.g. out of stock and expired.
type AlertReport struct {
	Expired      []Product
	ExpiringSoon []Product
	LowStock     []Product
	OutOfStock   []Product
}
