package reservationRepo

import (
	"lavellh/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoReservationRepo persists reservations in a single tagged collection.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo creates a MongoReservationRepo backed by the shared client.
func NewMongoReservationRepo() *MongoReservationRepo {
	return &MongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
}
