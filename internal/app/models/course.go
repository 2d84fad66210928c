package models

// Course represents a course students can enroll in.
type Course struct {
	ID    int64  `json:"id" db:"id" example:"5"`
	Title string `json:"title" db:"title" example:"Battling 101"`
}
