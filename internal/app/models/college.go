package models

// College represents an institution
type College struct {
	ID       string `json:"id"`
	Name     string `json:"college_name"`
	Location string `json:"location"`
}
