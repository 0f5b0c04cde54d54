package model

type Category struct {
	BaseModel
	Slug string `db:"slug" json:"slug"` // Used for routing
	Name string `db:"name" json:"name"`
}
