package plan

// AllTags disables tag filtering.
const AllTags = "all"

type ListRequest struct {
	ActiveOnly bool
	Tag        string
	Skip       int
	Limit      int
}

type CreateRequest struct {
	Name        string             `json:"name" validate:"required,max=255"`
	Slug        string             `json:"slug" validate:"omitempty,max=255" copier:"-"`
	Description string             `json:"description"`
	Price       float64            `json:"price" validate:"gte=0"`
	Addons      map[string]float64 `json:"addons" copier:"-"`
	Entries     int                `json:"entries" validate:"gte=0"`
	Limits      map[string]int     `json:"limits" copier:"-"`
	Tags        []string           `json:"tags" copier:"-"`
	IsActive    *bool              `json:"is_active" copier:"-"`
}

// UpdateRequest carries only the fields to change.
type UpdateRequest struct {
	Name        *string            `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string            `json:"description"`
	Price       *float64           `json:"price" validate:"omitempty,gte=0"`
	Addons      map[string]float64 `json:"addons" copier:"-"`
	Entries     *int               `json:"entries" validate:"omitempty,gte=0"`
	Limits      map[string]int     `json:"limits" copier:"-"`
	Tags        []string           `json:"tags" copier:"-"`
	IsActive    *bool              `json:"is_active"`
}
