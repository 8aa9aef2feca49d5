package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID  map[string]Pet
	order []string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// vanishingRepo simulates a pet deleted between the service's read and its
// conditional write.
type vanishingRepo struct {
	*testRepo
}

func (r *vanishingRepo) Update(ctx context.Context, p Pet) error {
	return ErrNotFound
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_AssignsIDAndTimestamps(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 3, 14, 10, 0, 0, 123456789, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), CreateInput{Type: "  dog ", Name: " Alexander "})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if p.ID == "" {
		t.Fatal("expected a generated id")
	}
	if p.Type != "dog" || p.Name != "Alexander" {
		t.Fatalf("expected trimmed fields, got type=%q name=%q", p.Type, p.Name)
	}

	// timestamps are clamped to the millisecond so they survive storage
	want := now.Truncate(time.Millisecond)
	if !p.CreatedAt.Equal(want) || !p.UpdatedAt.Equal(want) {
		t.Fatalf("expected CreatedAt/UpdatedAt %v, got %v / %v", want, p.CreatedAt, p.UpdatedAt)
	}

	stored, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("pet not stored: %v", err)
	}
	if stored != p {
		t.Fatalf("stored pet differs: %+v vs %+v", stored, p)
	}
}

func TestService_Create_RequiresTypeAndName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	for _, in := range []CreateInput{
		{Type: "", Name: "Alexander"},
		{Type: "dog", Name: ""},
		{Type: "   ", Name: "Alexander"},
		{Type: "dog", Name: "   "},
	} {
		_, err := svc.Create(context.Background(), in)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}

	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing stored, got %d pets", len(repo.byID))
	}
}

func TestService_Create_UniqueIDs(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	p1, err := svc.Create(context.Background(), CreateInput{Type: "dog", Name: "Alexander"})
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}
	p2, err := svc.Create(context.Background(), CreateInput{Type: "dog", Name: "Alexander"})
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}

	if p1.ID == p2.ID {
		t.Fatalf("expected distinct ids, both got %s", p1.ID)
	}
}

func TestService_Update_MergePatch(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now1 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(5 * time.Minute)
	svc.now = func() time.Time { return now1 }

	created, err := svc.Create(context.Background(), CreateInput{Type: "dog", Name: "Alexander"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// patch the name only; the type must carry over from the stored record
	svc.now = func() time.Time { return now2 }
	name := "Hector"
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Type != "dog" {
		t.Fatalf("expected type preserved, got %q", updated.Type)
	}
	if updated.Name != "Hector" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(now2) {
		t.Fatalf("expected UpdatedAt %v, got %v", now2, updated.UpdatedAt)
	}

	// now the other way: patch the type only
	typ := "cat"
	updated, err = svc.Update(context.Background(), created.ID, UpdateInput{Type: &typ})
	if err != nil {
		t.Fatalf("Update #2 error: %v", err)
	}
	if updated.Type != "cat" || updated.Name != "Hector" {
		t.Fatalf("expected cat/Hector, got %s/%s", updated.Type, updated.Name)
	}
}

func TestService_Update_RejectsBlankField(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateInput{Type: "dog", Name: "Alexander"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	blank := "   "
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{Name: &blank})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), created.ID)
	if stored.Name != "Alexander" {
		t.Fatalf("rejected update still changed the record: %q", stored.Name)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	name := "Ghost"
	_, err := svc.Update(context.Background(), "no-such-id", UpdateInput{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Update_PetVanishedBetweenReadAndWrite(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(&vanishingRepo{repo}, nil)

	created, err := svc.Create(context.Background(), CreateInput{Type: "dog", Name: "Alexander"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	name := "Hector"
	_, err = svc.Update(context.Background(), created.ID, UpdateInput{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from the conditional write, got %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	created, err := svc.Create(context.Background(), CreateInput{Type: "dog", Name: "Alexander"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestService_List_PassesThrough(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	for _, name := range []string{"Alexander", "Hector", "Pepper"} {
		if _, err := svc.Create(context.Background(), CreateInput{Type: "dog", Name: name}); err != nil {
			t.Fatalf("Create %s error: %v", name, err)
		}
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 pets, got %d", len(items))
	}
	for i, name := range []string{"Alexander", "Hector", "Pepper"} {
		if items[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, items[i].Name)
		}
	}
}
