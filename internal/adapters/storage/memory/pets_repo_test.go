package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frasnym/swagger-api-pets/internal/domain/pets"
)

func TestPetRepo_CreateAndGet(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	want := testPet("pet-1", "dog", "Alexander")
	if err := repo.Create(ctx, want); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "pet-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != want {
		t.Errorf("pet mismatch: got %+v, want %+v", got, want)
	}
}

func TestPetRepo_CreateRejectsDuplicates(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, testPet("pet-1", "dog", "Alexander")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, testPet("pet-1", "cat", "Hector")); err == nil {
		t.Error("expected error creating duplicate id, got nil")
	}
}

func TestPetRepo_NotFound(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "nonexistent"); !errors.Is(err, pets.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, testPet("nonexistent", "dog", "Ghost")); !errors.Is(err, pets.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "nonexistent"); !errors.Is(err, pets.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestPetRepo_Update(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	p := testPet("pet-2", "cat", "Hector")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	p.Name = "Hector II"
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "pet-2")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Hector II" {
		t.Errorf("Name not updated: got %q", got.Name)
	}
}

func TestPetRepo_ListKeepsInsertionOrder(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()

	for _, id := range []string{"pet-a", "pet-b", "pet-c"} {
		if err := repo.Create(ctx, testPet(id, "dog", id)); err != nil {
			t.Fatalf("Create %s failed: %v", id, err)
		}
	}

	if err := repo.Delete(ctx, "pet-b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Create(ctx, testPet("pet-d", "dog", "pet-d")); err != nil {
		t.Fatalf("Create pet-d failed: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"pet-a", "pet-c", "pet-d"}
	if len(got) != len(want) {
		t.Fatalf("expected %d pets, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, id)
		}
	}
}

func testPet(id, typ, name string) pets.Pet {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return pets.Pet{ID: id, Type: typ, Name: name, CreatedAt: now, UpdatedAt: now}
}
