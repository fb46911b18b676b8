package models

import "time"

// SlotTemplate is a bookable duration+price option on an appointment-enabled listing.
type SlotTemplate struct {
	ID           string `bson:"id" json:"id"`
	Duration     int    `bson:"duration" json:"duration"`
	DurationUnit string `bson:"duration_unit" json:"durationUnit"` // "minutes" or "hours"
	Price        Amount `bson:"price" json:"price"`
}

// Listing is the catalog snapshot the engine reads. The catalog owns the
// record; the engine only writes back the aggregate rating fields.
type Listing struct {
	ID                 string         `bson:"id" json:"id"`
	ProviderID         string         `bson:"provider_id" json:"providerId"`
	Name               string         `bson:"name" json:"name"`
	Photo              string         `bson:"photo" json:"photo"`
	CategoryID         string         `bson:"category_id" json:"categoryId"`
	BasePrice          Amount         `bson:"base_price" json:"basePrice"`
	AppointmentEnabled bool           `bson:"appointment_enabled" json:"appointmentEnabled"`
	SlotTemplates      []SlotTemplate `bson:"slot_templates,omitempty" json:"slotTemplates,omitempty"`
	IsActive           bool           `bson:"is_active" json:"isActive"`
	Rating             float64        `bson:"rating" json:"rating"`
	TotalReviews       int            `bson:"total_reviews" json:"totalReviews"`
	UpdatedAt          time.Time      `bson:"updated_at" json:"updatedAt"`
}

// SlotTemplateByID resolves a template on the listing, nil when absent.
func (l *Listing) SlotTemplateByID(id string) *SlotTemplate {
	for i := range l.SlotTemplates {
		if l.SlotTemplates[i].ID == id {
			return &l.SlotTemplates[i]
		}
	}
	return nil
}
