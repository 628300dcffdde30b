package artwork

// Service orchestrates catalog operations.
type Service struct {
	repo Repository
}

// ServiceInterface is the subset other feature packages depend on.
type ServiceInterface interface {
	GetByID(id int) (Artwork, error)
	ListByIDs(ids []int) ([]Artwork, error)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(filter ListFilter) ([]Artwork, error) {
	return s.repo.List(filter)
}

func (s *Service) GetByID(id int) (Artwork, error) {
	if id <= 0 {
		return Artwork{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]Artwork, error) {
	return s.repo.ListByIDs(ids)
}

func (s *Service) Create(a Artwork) (Artwork, error) {
	if !ValidMedium(a.Medium) {
		return Artwork{}, ErrInvalidMedium
	}
	if a.StockCount < 0 {
		a.StockCount = 0
	}
	return s.repo.Create(a)
}

func (s *Service) Update(id int, a Artwork) (Artwork, error) {
	if id <= 0 {
		return Artwork{}, ErrNotFound
	}
	if !ValidMedium(a.Medium) {
		return Artwork{}, ErrInvalidMedium
	}
	if a.StockCount < 0 {
		a.StockCount = 0
	}
	return s.repo.Update(id, a)
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
