package models

import "time"

// Rating is derived from the reviews collection, never written by product CRUD.
type Rating struct {
	Avg   float64 `json:"avg" bson:"avg"`
	Count int     `json:"count" bson:"count"`
}

type Product struct {
	ProductID   string    `json:"id" bson:"productid"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Currency    string    `json:"currency" bson:"currency"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Stock       int       `json:"stock" bson:"stock"`
	Thumbnail   string    `json:"thumbnail" bson:"thumbnail"`
	Images      []string  `json:"images" bson:"images"`
	Tags        []string  `json:"tags" bson:"tags"`
	Rating      Rating    `json:"rating" bson:"rating,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
