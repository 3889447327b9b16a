package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"_id", "name", "bookings", "updated_at"},
		"additionalProperties": false,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 128,
			},

			"bookings": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType":             "object",
					"required":             []string{"id", "start_time", "end_time"},
					"additionalProperties": false,
					"properties": bson.M{
						"id": bson.M{
							"bsonType":  "string",
							"minLength": 1,
						},
						"start_time": bson.M{
							"bsonType": "date",
						},
						"end_time": bson.M{
							"bsonType": "date",
						},
					},
				},
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var RoomLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "room_id", "owner", "expires_at", "created_at"},

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},
			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"owner": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"expires_at": bson.M{
				"bsonType": "date",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
