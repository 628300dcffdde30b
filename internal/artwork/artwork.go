package artwork

// Dimensions describes the physical size of a piece.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// Artwork is a catalog entry. InStock is derived from StockCount and never
// stored on its own.
type Artwork struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Medium         string     `json:"medium"`
	Category       string     `json:"category"`
	Style          string     `json:"style"`
	Dimensions     Dimensions `json:"dimensions"`
	Images         []string   `json:"images"`
	MainImageIndex int        `json:"mainImageIndex"`
	InStock        bool       `json:"inStock"`
	StockCount     int        `json:"stockCount"`
	Featured       bool       `json:"featured"`
	Tags           []string   `json:"tags"`
	DateCreated    string     `json:"dateCreated"`
	CreatedAt      string     `json:"createdAt,omitempty"`
	UpdatedAt      string     `json:"updatedAt,omitempty"`
}

// Valid mediums.
const (
	MediumFabric    = "fabric"
	MediumOil       = "oil"
	MediumHandcraft = "handcraft"
)

func ValidMedium(m string) bool {
	switch m {
	case MediumFabric, MediumOil, MediumHandcraft:
		return true
	}
	return false
}

// MainImage returns the image the MainImageIndex points at, or the first
// image when the pointer is out of range.
func (a Artwork) MainImage() string {
	if len(a.Images) == 0 {
		return ""
	}
	if a.MainImageIndex >= 0 && a.MainImageIndex < len(a.Images) {
		return a.Images[a.MainImageIndex]
	}
	return a.Images[0]
}

// ListFilter narrows public catalog listings.
type ListFilter struct {
	Medium   string
	Category string
	Featured *bool
}
