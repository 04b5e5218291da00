package models

// Branch represents an academic program, e.g. Computer Engineering
type Branch struct {
	ID   string `json:"id"`
	Name string `json:"branch_name"`
	Code string `json:"branch_code"`
}
