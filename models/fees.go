package models

// FeeCalculation is the full price breakdown for one booking request.
// It is a pure derived value: computed once, attached to a booking, never
// recomputed afterwards. All monetary fields are rounded to 2 decimals.
type FeeCalculation struct {
	BaseRate      float64 `bson:"base_rate" json:"baseRate"`
	Quantity      float64 `bson:"quantity" json:"quantity"`
	Subtotal      float64 `bson:"subtotal" json:"subtotal"`
	ClientFeePct  float64 `bson:"client_fee_pct" json:"clientFeePct"`
	ClientFee     float64 `bson:"client_fee" json:"clientFee"`
	ClientTotal   float64 `bson:"client_total" json:"clientTotal"`
	CarerFeePct   float64 `bson:"carer_fee_pct" json:"carerFeePct"`
	CarerFee      float64 `bson:"carer_fee" json:"carerFee"`
	CarerEarnings float64 `bson:"carer_earnings" json:"carerEarnings"`
	PromoApplied  bool    `bson:"promo_applied" json:"promoApplied"`
}
