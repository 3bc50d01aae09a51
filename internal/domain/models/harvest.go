// internal/domain/models/harvest.go
package models

import "time"

// HarvestLog records one harvest: what was picked, how much, and how it
// rated. Immutable after creation; deleted explicitly or by account teardown.
type HarvestLog struct {
	ID       string    `bson:"harvest_id" json:"id"`
	CropName string    `bson:"crop_name" json:"cropName"`
	WeightKg float64   `bson:"weight_kg" json:"weightKg"`
	Rating   int       `bson:"rating" json:"rating"` // 1..5
	Date     time.Time `bson:"date" json:"date"`
	ImageURL string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}
