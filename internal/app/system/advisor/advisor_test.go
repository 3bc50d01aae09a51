package advisor

import (
	"encoding/json"
	"testing"

	"github.com/dalemusser/gardenlog/internal/domain/models"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n[1,2]\n```", `[1,2]`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range tests {
		if got := stripFences(tc.in); got != tc.want {
			t.Errorf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStrippedResponseDecodes(t *testing.T) {
	fenced := "```json\n{\"healthTitle\":\"Compacted but alive\",\"healthScore\":5,\"diagnosisSummary\":\"s\",\"immediateActions\":[],\"longTermStrategy\":\"l\",\"recommendedPlants\":[]}\n```"

	var out models.DiagnosisResponse
	if err := json.Unmarshal([]byte(stripFences(fenced)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.HealthTitle != "Compacted but alive" || out.HealthScore != 5 {
		t.Errorf("fields wrong: %+v", out)
	}
}

func TestImageParts_BadBase64(t *testing.T) {
	_, err := imageParts([]models.SeedImage{{Base64: "not base64!!!", MimeType: "image/png"}})
	if err == nil {
		t.Error("invalid base64 accepted")
	}
}

func TestNewClient_NoKey(t *testing.T) {
	if _, err := NewClient(t.Context(), "", "", nil); err != ErrNotConfigured {
		t.Errorf("NewClient with no key = %v, want ErrNotConfigured", err)
	}
}
