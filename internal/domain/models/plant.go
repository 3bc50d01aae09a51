// internal/domain/models/plant.go
package models

import "time"

// Plant types.
const (
	PlantTypeVegetable = "Vegetable"
	PlantTypeHerb      = "Herb"
	PlantTypeFlower    = "Flower"
	PlantTypeFruit     = "Fruit"
)

// Plant is one plant in a gardener's log.
//
// ID is an opaque string, assigned at creation. Legacy local-mode records can
// lack one; the plant store repairs those in place on the next list (see the
// plants store package).
//
// The sow/transplant/harvest fields are free-form month ranges as they appear
// on seed packets (e.g. "Feb-Mar", "N/A").
type Plant struct {
	ID          string    `bson:"plant_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Type        string    `bson:"type" json:"type"` // Vegetable | Herb | Flower | Fruit
	Season      string    `bson:"season" json:"season"`
	PlantedDate time.Time `bson:"planted_date" json:"plantedDate"`
	ImageURL    string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	IsPlanted   bool      `bson:"is_planted" json:"isPlanted"`

	SowIndoors  string `bson:"sow_indoors,omitempty" json:"sowIndoors,omitempty"`
	SowOutdoors string `bson:"sow_outdoors,omitempty" json:"sowOutdoors,omitempty"`
	Transplant  string `bson:"transplant,omitempty" json:"transplant,omitempty"`
	Harvest     string `bson:"harvest,omitempty" json:"harvest,omitempty"`

	EstimatedHarvestDate *time.Time `bson:"estimated_harvest_date,omitempty" json:"estimatedHarvestDate,omitempty"`
}
