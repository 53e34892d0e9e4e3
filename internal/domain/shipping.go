package domain

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingPickup   ShippingMethod = "pickup"
)

func (m ShippingMethod) Valid() bool {
	switch m {
	case ShippingStandard, ShippingExpress, ShippingPickup:
		return true
	}
	return false
}

type ShippingOption struct {
	ID          ShippingMethod `json:"id"`
	DisplayName string         `json:"display_name"`
	ETA         string         `json:"eta"`
	Price       Cents          `json:"price"`
}
