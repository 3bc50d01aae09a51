// internal/domain/models/advice.go
package models

// Advisor request/response types. These are the typed records exchanged with
// the generative-AI advisor; the storage layer persists only PlantingPlan
// (as part of SavedPlan), the rest flow straight through to the caller.

// SoilDiagnosisInputs describes the gardener's soil observations.
type SoilDiagnosisInputs struct {
	Texture         string `json:"texture"`
	Compaction      string `json:"compaction"`
	Drainage        string `json:"drainage"`
	Biodiversity    string `json:"biodiversity"`
	Surface         string `json:"surface"`
	SpecificConcern string `json:"specificConcern"`
}

// DiagnosisAction is one recommended action in a soil diagnosis.
type DiagnosisAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // High | Medium | Low
}

// DiagnosisPlant is a plant recommended to improve the diagnosed soil.
type DiagnosisPlant struct {
	Name    string `json:"name"`
	Benefit string `json:"benefit"`
	Type    string `json:"type"` // Cover Crop | Vegetable | Flower
}

// DiagnosisResponse is the advisor's soil health report.
type DiagnosisResponse struct {
	HealthTitle       string            `json:"healthTitle"`
	HealthScore       int               `json:"healthScore"`
	DiagnosisSummary  string            `json:"diagnosisSummary"`
	ImmediateActions  []DiagnosisAction `json:"immediateActions"`
	LongTermStrategy  string            `json:"longTermStrategy"`
	RecommendedPlants []DiagnosisPlant  `json:"recommendedPlants"`
}

// SeedImage is an uploaded photo of a seed packet or plant.
type SeedImage struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

// PlantIdentification is one plant recognized from uploaded images, with the
// estimated sow/transplant/harvest windows used to pre-fill a Plant record.
type PlantIdentification struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Season      string  `json:"season"`
	Confidence  float64 `json:"confidence"`
	Notes       string  `json:"notes"`
	SowIndoors  string  `json:"sowIndoors"`
	SowOutdoors string  `json:"sowOutdoors"`
	Transplant  string  `json:"transplant"`
	Harvest     string  `json:"harvest"`
}

// PlantHealthResult is the plant doctor's diagnosis of a photographed plant.
type PlantHealthResult struct {
	Diagnosis   string   `json:"diagnosis"`
	Confidence  string   `json:"confidence"` // High | Medium | Low
	Symptoms    []string `json:"symptoms"`
	Cause       string   `json:"cause"`
	OrganicCure string   `json:"organicCure"`
	Prevention  string   `json:"prevention"`
	IsHealthy   bool     `json:"isHealthy"`
}

// PlantingPlanInputs describes the space and seed inventory a planting plan
// should be generated for.
type PlantingPlanInputs struct {
	Location   string      `json:"location"`
	SpaceSize  string      `json:"spaceSize"`
	SpaceUnit  string      `json:"spaceUnit"` // m² | ft²
	SeedText   string      `json:"seedText"`
	SeedImages []SeedImage `json:"seedImages,omitempty"`
}

// RecipeResult is a recipe suggested for a set of harvested crops.
type RecipeResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PrepTime    string   `json:"prepTime"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	ChefsNote   string   `json:"chefsNote"`
}

// GapFillerInputs describes an empty patch the gardener wants to fill.
type GapFillerInputs struct {
	GapSize           string `json:"gapSize"`
	SurroundingPlants string `json:"surroundingPlants"`
	Goal              string `json:"goal"` // Food | Soil Regeneration
	UseInventory      bool   `json:"useInventory"`
	Inventory         string `json:"inventory,omitempty"`
	Location          string `json:"location"`
}

// GapFillerResult is the advisor's pick for a garden gap.
type GapFillerResult struct {
	RecommendedPlant     string `json:"recommendedPlant"`
	Reasoning            string `json:"reasoning"`
	PlantingInstructions string `json:"plantingInstructions"`
	CompanionBenefits    string `json:"companionBenefits"`
	IsFromInventory      bool   `json:"isFromInventory"`
}
