package wishlist

import (
	"errors"
	"testing"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
)

func newTestService(seed []artwork.Artwork) *Service {
	catalog := artwork.NewService(artwork.NewInMemoryRepository(seed))
	return NewService(NewInMemoryRepository(catalog), catalog)
}

func TestAddIsIdempotent(t *testing.T) {
	svc := newTestService([]artwork.Artwork{{ID: 1, Title: "A", Medium: artwork.MediumOil}})

	if _, err := svc.Add(42, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	ids, err := svc.Add(42, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("ids = %v, want a single entry", ids)
	}
}

func TestAddRejectsUnknownArtwork(t *testing.T) {
	svc := newTestService(nil)

	if _, err := svc.Add(42, 99); !errors.Is(err, artwork.ErrNotFound) {
		t.Fatalf("err = %v, want artwork.ErrNotFound", err)
	}
}

func TestMergeIsSetUnion(t *testing.T) {
	svc := newTestService([]artwork.Artwork{
		{ID: 1, Title: "A", Medium: artwork.MediumOil},
		{ID: 2, Title: "B", Medium: artwork.MediumFabric},
	})

	if _, err := svc.Add(42, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// guest list overlaps the server set, repeats itself, and references
	// a vanished artwork
	ids, err := svc.Merge(42, []int{1, 2, 2, 99, -1})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want {1, 2}", ids)
	}
	seen := map[int]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[1] || !seen[2] || seen[99] {
		t.Fatalf("ids = %v", ids)
	}
}

func TestRemove(t *testing.T) {
	svc := newTestService([]artwork.Artwork{{ID: 1, Title: "A", Medium: artwork.MediumOil}})

	if _, err := svc.Add(42, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	ids, err := svc.Remove(42, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ids = %v, want empty", ids)
	}

	if _, err := svc.Remove(42, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
