package models

// Category is the reservation classification a cutoff applies to
type Category string

const (
	CategoryOpen Category = "OPEN"
	CategorySC   Category = "SC"
	CategoryST   Category = "ST"
	CategoryOBC  Category = "OBC"
	CategoryEWS  Category = "EWS"
)

// Categories lists every recognised category, in form order.
var Categories = []Category{CategoryOpen, CategorySC, CategoryST, CategoryOBC, CategoryEWS}

// IsValid reports whether c is a recognised category
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Domicile is the state-residency status of a cutoff or a student
type Domicile string

const (
	DomicileInState    Domicile = "Maharashtra"
	DomicileOutOfState Domicile = "Other State"
)

// IsValid reports whether d is a recognised domicile
func (d Domicile) IsValid() bool {
	return d == DomicileInState || d == DomicileOutOfState
}
