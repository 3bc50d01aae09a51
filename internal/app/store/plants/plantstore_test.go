package plants_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/store/plants"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/dalemusser/gardenlog/internal/testutil"
)

func TestAddListRoundTrip(t *testing.T) {
	kv := testutil.NewLocalStore(t)
	store := plants.NewLocal(kv, testutil.Logger())
	ctx := context.Background()

	planted := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	id, err := store.Add(ctx, "u1", models.Plant{
		Name:        "Tomato - Money Maker",
		Type:        models.PlantTypeVegetable,
		Season:      "Summer",
		PlantedDate: planted,
		SowIndoors:  "Feb-Mar",
		Harvest:     "Jul-Sep",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id == "" {
		t.Fatal("Add returned empty id")
	}

	got, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d plants, want 1", len(got))
	}
	if got[0].ID != id {
		t.Errorf("id = %q, want %q", got[0].ID, id)
	}
	if !got[0].PlantedDate.Equal(planted) {
		t.Errorf("PlantedDate = %v, want %v (temporal type must survive the round trip)", got[0].PlantedDate, planted)
	}

	// Other users see nothing.
	other, err := store.List(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("u2 sees u1's plants: %v", other)
	}
}

func TestUpdateStatus(t *testing.T) {
	kv := testutil.NewLocalStore(t)
	store := plants.NewLocal(kv, testutil.Logger())
	ctx := context.Background()

	id, _ := store.Add(ctx, "u1", models.Plant{Name: "Basil", Type: models.PlantTypeHerb})
	if err := store.UpdateStatus(ctx, "u1", id, true); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	got, _ := store.List(ctx, "u1")
	if !got[0].IsPlanted {
		t.Error("IsPlanted not updated")
	}

	// Updating a missing plant is harmless.
	if err := store.UpdateStatus(ctx, "u1", "no-such-id", false); err != nil {
		t.Errorf("UpdateStatus of absent id returned %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	kv := testutil.NewLocalStore(t)
	store := plants.NewLocal(kv, testutil.Logger())
	ctx := context.Background()

	id, _ := store.Add(ctx, "u1", models.Plant{Name: "Carrot"})
	keep, _ := store.Add(ctx, "u1", models.Plant{Name: "Kale"})

	if err := store.Delete(ctx, "u1", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Deleting the same id again must not error and must change nothing.
	if err := store.Delete(ctx, "u1", id); err != nil {
		t.Fatalf("second Delete errored: %v", err)
	}
	if err := store.Delete(ctx, "u1", "never-existed"); err != nil {
		t.Fatalf("Delete of unknown id errored: %v", err)
	}

	got, _ := store.List(ctx, "u1")
	if len(got) != 1 || got[0].ID != keep {
		t.Errorf("collection changed by idempotent deletes: %v", got)
	}
}

func TestListRepairsMissingIDsOnce(t *testing.T) {
	kv := testutil.NewLocalStore(t)
	store := plants.NewLocal(kv, testutil.Logger())
	ctx := context.Background()

	// Seed legacy-format data directly: two records without ids, one with.
	legacy := `[
		{"name":"Old Tomato","type":"Vegetable","plantedDate":"2024-05-01T00:00:00Z","isPlanted":true},
		{"id":"keep-me","name":"Kale","type":"Vegetable","plantedDate":"2024-06-01T00:00:00Z","isPlanted":false},
		{"name":"Old Basil","type":"Herb","plantedDate":"2024-07-01T00:00:00Z","isPlanted":false}
	]`
	if err := kv.Put("demo_plants_u1", legacy); err != nil {
		t.Fatal(err)
	}

	first, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("List returned %d plants, want 3", len(first))
	}

	seen := map[string]bool{}
	for _, p := range first {
		if p.ID == "" {
			t.Errorf("plant %q still has no id after repair", p.Name)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %q after repair", p.ID)
		}
		seen[p.ID] = true
	}
	if !seen["keep-me"] {
		t.Error("existing id was rewritten by the repair")
	}

	// The repair is persisted: a second List returns identical ids.
	second, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if second[i].ID != first[i].ID {
			t.Errorf("id changed between lists: %q then %q", first[i].ID, second[i].ID)
		}
	}
}

func TestDeleteAllForUser(t *testing.T) {
	kv := testutil.NewLocalStore(t)
	store := plants.NewLocal(kv, testutil.Logger())
	ctx := context.Background()

	_, _ = store.Add(ctx, "u1", models.Plant{Name: "Pea"})
	_, _ = store.Add(ctx, "u1", models.Plant{Name: "Bean"})

	if err := store.DeleteAllForUser(ctx, "u1"); err != nil {
		t.Fatalf("DeleteAllForUser failed: %v", err)
	}
	got, _ := store.List(ctx, "u1")
	if len(got) != 0 {
		t.Errorf("plants remain after DeleteAllForUser: %v", got)
	}

	// Second teardown is a no-op.
	if err := store.DeleteAllForUser(ctx, "u1"); err != nil {
		t.Errorf("repeat DeleteAllForUser returned %v", err)
	}
}
