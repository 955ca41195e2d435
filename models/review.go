package models

import "time"

type Review struct {
	ReviewID  string    `json:"reviewId" bson:"reviewid"`
	ProductID string    `json:"productId" bson:"productid"`
	Author    string    `json:"author" bson:"author"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
