package models

// Service structure types offered on the platform.
const (
	ServiceTypeHourly    = "hourly"
	ServiceTypeOvernight = "overnight"
	ServiceTypeLiveIn    = "live-in"
)

// Service subtypes. The subtype determines the billing unit:
// hourly -> hours, sleeping/waking -> nights, daily -> days, weekly -> weeks.
const (
	ServiceSubtypeHourly   = "hourly"
	ServiceSubtypeSleeping = "sleeping"
	ServiceSubtypeWaking   = "waking"
	ServiceSubtypeDaily    = "daily"
	ServiceSubtypeWeekly   = "weekly"
)

// ServiceSelection captures what the client is asking to book.
type ServiceSelection struct {
	Type     string  `bson:"type" json:"type" binding:"required"`
	Subtype  string  `bson:"subtype" json:"subtype" binding:"required"`
	Quantity float64 `bson:"quantity" json:"quantity" binding:"required,gt=0"` // unit depends on subtype
}

// RateCard is a provider's published per-unit prices. Entries may be absent;
// resolution falls back to the type-level default, then the platform default.
type RateCard struct {
	ProviderID   string             `bson:"provider_id" json:"providerId"`
	Subtypes     map[string]float64 `bson:"subtypes" json:"subtypes"`
	TypeDefaults map[string]float64 `bson:"type_defaults" json:"typeDefaults,omitempty"`
}
