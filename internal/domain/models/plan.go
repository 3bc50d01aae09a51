// internal/domain/models/plan.go
package models

import "time"

// PlantingPlan is the structured planting-plan document produced by the
// advisor: a seasonal schedule plus succession suggestions.
type PlantingPlan struct {
	SeasonalStrategy    string          `bson:"seasonal_strategy" json:"seasonalStrategy"`
	Schedule            []CropSchedule  `bson:"schedule" json:"schedule"`
	SuccessionPlans     []SuccessionPlan `bson:"succession_plans" json:"successionPlans"`
	SpaceMaximizationTip string         `bson:"space_maximization_tip" json:"spaceMaximizationTip"`
}

// CropSchedule is one row of a planting plan's schedule.
type CropSchedule struct {
	CropName    string `bson:"crop_name" json:"cropName"`
	SowIndoors  string `bson:"sow_indoors" json:"sowIndoors"`
	SowOutdoors string `bson:"sow_outdoors" json:"sowOutdoors"`
	Transplant  string `bson:"transplant" json:"transplant"`
	Harvest     string `bson:"harvest" json:"harvest"`
	Notes       string `bson:"notes" json:"notes"`
}

// SuccessionPlan suggests a follow-up crop once the original is done.
type SuccessionPlan struct {
	OriginalCrop string `bson:"original_crop" json:"originalCrop"`
	FollowUpCrop string `bson:"follow_up_crop" json:"followUpCrop"`
	Reason       string `bson:"reason" json:"reason"`
}

// SavedPlan is a named, saved planting plan. Read-only after creation; only
// removed by account teardown.
type SavedPlan struct {
	ID        string       `bson:"plan_id" json:"id"`
	UserID    string       `bson:"user_id" json:"userId"`
	Name      string       `bson:"name" json:"name"`
	Data      PlantingPlan `bson:"data" json:"data"`
	CreatedAt time.Time    `bson:"created_at" json:"createdAt"`
}
