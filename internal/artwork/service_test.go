package artwork

import (
	"errors"
	"testing"
)

func TestCreateValidatesMedium(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	if _, err := svc.Create(Artwork{Title: "X", Medium: "watercolor"}); !errors.Is(err, ErrInvalidMedium) {
		t.Fatalf("err = %v, want ErrInvalidMedium", err)
	}

	a, err := svc.Create(Artwork{Title: "X", Medium: MediumHandcraft, StockCount: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("id not assigned")
	}
	if !a.InStock {
		t.Fatal("InStock should derive from StockCount")
	}
}

func TestCreateRoundTripsRichFields(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	in := Artwork{
		Title:          "Monsoon Study",
		Description:    "oil on canvas",
		Price:          2500,
		Medium:         MediumOil,
		Category:       "landscape",
		Style:          "impressionist",
		Dimensions:     Dimensions{Width: 40, Height: 60, Unit: "cm"},
		Images:         []string{"/uploads/a.jpg", "/uploads/b.jpg"},
		MainImageIndex: 1,
		StockCount:     3,
		Featured:       true,
		Tags:           []string{"monsoon", "kerala"},
		DateCreated:    "2025-11",
	}
	created, err := svc.Create(in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Dimensions != in.Dimensions {
		t.Fatalf("dimensions = %+v", got.Dimensions)
	}
	if len(got.Images) != 2 || got.MainImageIndex != 1 {
		t.Fatalf("images = %v index = %d", got.Images, got.MainImageIndex)
	}
	if got.MainImage() != "/uploads/b.jpg" {
		t.Fatalf("main image = %q", got.MainImage())
	}
	if len(got.Tags) != 2 || got.Tags[0] != "monsoon" {
		t.Fatalf("tags = %v", got.Tags)
	}
}

func TestMainImageFallsBackToFirst(t *testing.T) {
	a := Artwork{Images: []string{"/uploads/a.jpg", "/uploads/b.jpg"}, MainImageIndex: 7}
	if a.MainImage() != "/uploads/a.jpg" {
		t.Fatalf("main image = %q, want first image", a.MainImage())
	}

	if (Artwork{}).MainImage() != "" {
		t.Fatal("empty artwork should have empty main image")
	}
}

func TestListFilters(t *testing.T) {
	featured := true
	repo := NewInMemoryRepository([]Artwork{
		{ID: 1, Title: "A", Medium: MediumOil, Category: "landscape", Featured: true},
		{ID: 2, Title: "B", Medium: MediumFabric, Category: "abstract"},
		{ID: 3, Title: "C", Medium: MediumOil, Category: "abstract"},
	})
	svc := NewService(repo)

	oil, err := svc.List(ListFilter{Medium: MediumOil})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(oil) != 2 {
		t.Fatalf("oil count = %d, want 2", len(oil))
	}

	hot, err := svc.List(ListFilter{Featured: &featured})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hot) != 1 || hot[0].ID != 1 {
		t.Fatalf("featured = %+v", hot)
	}
}

func TestDecrementStockGuard(t *testing.T) {
	repo := NewInMemoryRepository([]Artwork{{ID: 1, Title: "A", Medium: MediumOil, StockCount: 2}})

	if err := repo.DecrementStock(1, 3); err == nil {
		t.Fatal("expected error when decrementing past zero")
	}
	if err := repo.DecrementStock(1, 2); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	a, _ := repo.GetByID(1)
	if a.StockCount != 0 || a.InStock {
		t.Fatalf("artwork = %+v, want zero stock and not in stock", a)
	}
}
