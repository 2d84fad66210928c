package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID   int64  `json:"id" db:"id" example:"3"`
	Name string `json:"name" db:"name" example:"Misty"`
}
