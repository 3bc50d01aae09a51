// Package advisor wraps the Gemini API behind typed gardening requests:
// soil diagnosis, seed-packet identification, planting plans, recipes, and
// gap-filling suggestions. Every method asks for a JSON response constrained
// by a schema and decodes it into the matching domain type.
package advisor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

// ErrNotConfigured is returned by NewClient when no API key is set. Callers
// should treat the advisor as absent rather than failing startup.
var ErrNotConfigured = errors.New("advisor: no API key configured")

const defaultModel = "gemini-2.5-flash"

// Client talks to the Gemini API.
type Client struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewClient creates an advisor client. model may be empty to use the default.
func NewClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model, log: logger}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Seed packet / plant identification                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// IdentifyPlants recognizes every distinct plant species across the uploaded
// images, estimating sow/transplant/harvest windows when the packet does not
// state them.
func (c *Client) IdentifyPlants(ctx context.Context, images []models.SeedImage) ([]models.PlantIdentification, error) {
	if len(images) == 0 {
		return nil, errors.New("no images provided")
	}

	parts, err := imageParts(images)
	if err != nil {
		return nil, err
	}

	parts = append(parts, genai.NewPartFromText(`Analyze these images. They contain one or more seed packets or plants.
Identify EVERY distinct plant species visible.

For each plant found, return a JSON object with the following fields.
IMPORTANT: If exact dates are not visible on the packet, you MUST ESTIMATE them based on general gardening knowledge for a Temperate Northern Hemisphere climate. Do not return empty strings.

- name: The common name and variety if visible (e.g. "Tomato - Roma").
- type: "Vegetable", "Herb", "Flower", or "Fruit".
- season: Best growing season ("Spring", "Summer", "Autumn", or "Winter").
- notes: A very short tip (max 10 words).
- sowIndoors: The months to sow indoors (e.g., "Feb-Mar"). If strictly outdoor, return "N/A". ESTIMATE if not found.
- sowOutdoors: The months to sow outdoors (e.g., "Apr-Jun"). If strictly indoor, return "N/A". ESTIMATE if not found.
- transplant: The months to transplant (e.g., "May-Jun"). If direct sow only, return "N/A". ESTIMATE if not found.
- harvest: The months to harvest (e.g., "Jul-Sep"). ESTIMATE if not found.

Return strictly a JSON array of these objects.`))

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString},
				"type":        {Type: genai.TypeString, Enum: []string{"Vegetable", "Herb", "Flower", "Fruit"}},
				"season":      {Type: genai.TypeString, Enum: []string{"Spring", "Summer", "Autumn", "Winter"}},
				"notes":       {Type: genai.TypeString},
				"sowIndoors":  {Type: genai.TypeString},
				"sowOutdoors": {Type: genai.TypeString},
				"transplant":  {Type: genai.TypeString},
				"harvest":     {Type: genai.TypeString},
			},
			Required: []string{"name", "type", "season", "sowIndoors", "sowOutdoors", "transplant", "harvest"},
		},
	}

	// Lower temperature for more factual extraction.
	var out []models.PlantIdentification
	if err := c.generateInto(ctx, parts, schema, 0.4, &out); err != nil {
		return nil, fmt.Errorf("identify plants: %w", err)
	}
	return out, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Plant doctor                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// DiagnosePlantHealth examines a photo of an ailing plant for pests and
// disease, returning an organic treatment plan.
func (c *Client) DiagnosePlantHealth(ctx context.Context, image models.SeedImage) (*models.PlantHealthResult, error) {
	parts, err := imageParts([]models.SeedImage{image})
	if err != nil {
		return nil, err
	}

	parts = append(parts, genai.NewPartFromText(`You are an expert plant pathologist specializing in organic gardening.
Examine this photo of a plant for signs of pests, disease, or nutrient deficiency.

Return a JSON object with:
- diagnosis: The name of the pest, disease, or deficiency (or "Healthy Plant" if none found).
- confidence: "High", "Medium", or "Low" depending on how clearly the symptoms match.
- symptoms: The visible symptoms you identified, as short phrases.
- cause: What causes this condition.
- organicCure: A treatment plan using only organic methods. No synthetic pesticides or fungicides.
- prevention: How to prevent recurrence.
- isHealthy: true only if the plant shows no signs of trouble.`))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"diagnosis":   {Type: genai.TypeString},
			"confidence":  {Type: genai.TypeString, Enum: []string{"High", "Medium", "Low"}},
			"symptoms":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"cause":       {Type: genai.TypeString},
			"organicCure": {Type: genai.TypeString},
			"prevention":  {Type: genai.TypeString},
			"isHealthy":   {Type: genai.TypeBoolean},
		},
		Required: []string{"diagnosis", "confidence", "symptoms", "cause", "organicCure", "prevention", "isHealthy"},
	}

	var out models.PlantHealthResult
	if err := c.generateInto(ctx, parts, schema, 0.4, &out); err != nil {
		return nil, fmt.Errorf("diagnose plant health: %w", err)
	}
	return &out, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Soil diagnosis                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// DiagnoseSoil produces a soil health report from the gardener's observations.
func (c *Client) DiagnoseSoil(ctx context.Context, inputs models.SoilDiagnosisInputs) (*models.DiagnosisResponse, error) {
	concern := inputs.SpecificConcern
	if concern == "" {
		concern = "None provided"
	}

	prompt := fmt.Sprintf(`You are an expert gardening consultant specializing in **Minimal Disturbance Gardening** and **No-Dig** methods.

The user has provided the following details about their garden soil:
- **Texture:** %s
- **Compaction:** %s
- **Drainage:** %s
- **Biodiversity:** %s
- **Surface Condition:** %s
- **Specific Concern:** %s

Based strictly on **Minimal Disturbance** principles (No-Dig, keeping soil covered, keeping living roots in the ground, minimizing chemical use), provide a detailed diagnosis and action plan.

Return the result in strictly valid JSON format matching the schema provided.`,
		inputs.Texture, inputs.Compaction, inputs.Drainage, inputs.Biodiversity, inputs.Surface, concern)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"healthTitle":      {Type: genai.TypeString, Description: "A short 3-5 word summary title of the soil condition"},
			"healthScore":      {Type: genai.TypeNumber, Description: "A number 1-10 rating the soil health based on inputs"},
			"diagnosisSummary": {Type: genai.TypeString, Description: "A 2-3 sentence explanation of what is happening in the soil."},
			"immediateActions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"priority":    {Type: genai.TypeString, Enum: []string{"High", "Medium", "Low"}},
					},
				},
			},
			"longTermStrategy": {Type: genai.TypeString, Description: "Paragraph on maintaining fertility over seasons."},
			"recommendedPlants": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":    {Type: genai.TypeString},
						"benefit": {Type: genai.TypeString},
						"type":    {Type: genai.TypeString, Enum: []string{"Cover Crop", "Vegetable", "Flower"}},
					},
				},
			},
		},
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	var out models.DiagnosisResponse
	if err := c.generateInto(ctx, parts, schema, 0.7, &out); err != nil {
		return nil, fmt.Errorf("diagnose soil: %w", err)
	}
	return &out, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Planting plan                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// GeneratePlantingPlan builds a succession-planting schedule from either seed
// packet images or a free-text seed list.
func (c *Client) GeneratePlantingPlan(ctx context.Context, inputs models.PlantingPlanInputs) (*models.PlantingPlan, error) {
	var parts []*genai.Part

	if len(inputs.SeedImages) > 0 {
		imgs, err := imageParts(inputs.SeedImages)
		if err != nil {
			return nil, err
		}
		parts = append(parts, imgs...)
		parts = append(parts, genai.NewPartFromText("These images show the seed packets or list of seeds I have available."))
	} else if inputs.SeedText != "" {
		parts = append(parts, genai.NewPartFromText("I have the following seeds: "+inputs.SeedText))
	} else {
		return nil, errors.New("no seeds provided")
	}

	parts = append(parts, genai.NewPartFromText(fmt.Sprintf(`You are an expert market gardener specializing in **Succession Planting** and **Intercropping**.

User Parameters:
- **Location:** %s
- **Growing Space:** %s %s.

Based on the seeds provided, create a comprehensive planting plan.
Return valid JSON.`, inputs.Location, inputs.SpaceSize, inputs.SpaceUnit)))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"seasonalStrategy": {Type: genai.TypeString},
			"schedule": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"cropName":    {Type: genai.TypeString},
						"sowIndoors":  {Type: genai.TypeString},
						"sowOutdoors": {Type: genai.TypeString},
						"transplant":  {Type: genai.TypeString},
						"harvest":     {Type: genai.TypeString},
						"notes":       {Type: genai.TypeString},
					},
					Required: []string{"cropName", "harvest", "notes"},
				},
			},
			"successionPlans": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"originalCrop": {Type: genai.TypeString},
						"followUpCrop": {Type: genai.TypeString},
						"reason":       {Type: genai.TypeString},
					},
				},
			},
			"spaceMaximizationTip": {Type: genai.TypeString},
		},
	}

	var out models.PlantingPlan
	if err := c.generateInto(ctx, parts, schema, 0.7, &out); err != nil {
		return nil, fmt.Errorf("generate planting plan: %w", err)
	}
	return &out, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Recipes                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// SuggestRecipe proposes a dish built around harvested crops, optionally
// weaving in pantry staples and crops still growing in the garden.
func (c *Client) SuggestRecipe(ctx context.Context, harvested []string, pantry string, creativity string, growing []string) (*models.RecipeResult, error) {
	if len(harvested) == 0 {
		return nil, errors.New("no harvested crops selected")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a resourceful garden-to-table chef.

Create one recipe that makes the harvest the star of the dish.

- **Harvested crops (must feature):** %s
`, strings.Join(harvested, ", "))
	if pantry != "" {
		fmt.Fprintf(&b, "- **Pantry staples available:** %s\n", pantry)
	}
	if len(growing) > 0 {
		fmt.Fprintf(&b, "- **Still growing (may mention as garnish only):** %s\n", strings.Join(growing, ", "))
	}
	if creativity != "" {
		fmt.Fprintf(&b, "- **Creativity level:** %s\n", creativity)
	}
	b.WriteString("\nReturn valid JSON matching the schema provided.")

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString, Description: "One appetizing sentence."},
			"prepTime":    {Type: genai.TypeString, Description: "e.g. \"30 mins\""},
			"ingredients": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"steps":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"chefsNote":   {Type: genai.TypeString},
		},
		Required: []string{"title", "ingredients", "steps"},
	}

	parts := []*genai.Part{genai.NewPartFromText(b.String())}
	var out models.RecipeResult
	if err := c.generateInto(ctx, parts, schema, 0.8, &out); err != nil {
		return nil, fmt.Errorf("suggest recipe: %w", err)
	}
	return &out, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Gap filler                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// RecommendGapFiller picks a plant for an empty patch, preferring the
// gardener's own seed inventory when asked to.
func (c *Client) RecommendGapFiller(ctx context.Context, inputs models.GapFillerInputs, inventory []string) (*models.GapFillerResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert in intercropping and companion planting.

A gardener has an empty gap to fill right now:
- **Gap size:** %s
- **Surrounding plants:** %s
- **Goal:** %s
- **Location:** %s
`, inputs.GapSize, inputs.SurroundingPlants, inputs.Goal, inputs.Location)

	if inputs.UseInventory && len(inventory) > 0 {
		fmt.Fprintf(&b, "\nPrefer a plant from the gardener's own seed inventory if any fits: %s.\nSet isFromInventory accordingly.\n", strings.Join(inventory, ", "))
	} else {
		b.WriteString("\nRecommend any suitable plant; set isFromInventory to false.\n")
	}
	b.WriteString("\nPick exactly ONE plant, considering the current season for the location, companion effects with the surrounding plants, and the stated goal. Return valid JSON.")

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendedPlant":     {Type: genai.TypeString},
			"reasoning":            {Type: genai.TypeString},
			"plantingInstructions": {Type: genai.TypeString},
			"companionBenefits":    {Type: genai.TypeString},
			"isFromInventory":      {Type: genai.TypeBoolean},
		},
		Required: []string{"recommendedPlant", "reasoning", "plantingInstructions"},
	}

	parts := []*genai.Part{genai.NewPartFromText(b.String())}
	var out models.GapFillerResult
	if err := c.generateInto(ctx, parts, schema, 0.7, &out); err != nil {
		return nil, fmt.Errorf("recommend gap filler: %w", err)
	}
	return &out, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Internals                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// generateInto runs one schema-constrained generation and decodes the JSON
// response into out.
func (c *Client) generateInto(ctx context.Context, parts []*genai.Part, schema *genai.Schema, temperature float32, out any) error {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return errors.New("empty model response")
	}

	if err := json.Unmarshal([]byte(stripFences(text)), out); err != nil {
		c.log.Warn("advisor response did not parse",
			zap.String("model", c.model),
			zap.Error(err))
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// stripFences removes Markdown code fences some model versions wrap JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func imageParts(images []models.SeedImage) ([]*genai.Part, error) {
	parts := make([]*genai.Part, 0, len(images))
	for _, img := range images {
		data, err := base64.StdEncoding.DecodeString(img.Base64)
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, img.MimeType))
	}
	return parts, nil
}
