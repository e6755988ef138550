package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Review is a user's rating of a tour. Tour and Author are references
// resolved by the persistence layer on demand.
type Review struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Review    string        `bson:"review" json:"review"`
	Rating    float64       `bson:"rating" json:"rating"`
	TourID    bson.ObjectID `bson:"tour" json:"tour"`
	UserID    bson.ObjectID `bson:"user" json:"user"`
	Author    *User         `bson:"-" json:"author,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"-"`
}
