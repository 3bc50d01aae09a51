package indexes

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestKeySig(t *testing.T) {
	sig := keySig(bson.D{{Key: "owner_id", Value: 1}, {Key: "plant_id", Value: 1}})
	if sig != "owner_id:1, plant_id:1" {
		t.Errorf("keySig = %q", sig)
	}

	// Order matters: a reversed compound index is a different index.
	rev := keySig(bson.D{{Key: "plant_id", Value: 1}, {Key: "owner_id", Value: 1}})
	if rev == sig {
		t.Error("reversed key order produced the same signature")
	}
}

func TestSameBoolPtr(t *testing.T) {
	tr, fa := true, false
	tests := []struct {
		a, b *bool
		want bool
	}{
		{nil, nil, true},
		{nil, &fa, true},
		{&tr, &tr, true},
		{&tr, nil, false},
		{&tr, &fa, false},
	}
	for i, tc := range tests {
		if got := sameBoolPtr(tc.a, tc.b); got != tc.want {
			t.Errorf("case %d: sameBoolPtr = %v, want %v", i, got, tc.want)
		}
	}
}
