package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CowHealthLog is one persisted health observation for a named cow.
type CowHealthLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date           string             `bson:"date" json:"date"`
	Shift          string             `bson:"shift" json:"shift"`
	CowName        string             `bson:"cow_name" json:"cow_name"`
	CowTemperature float64            `bson:"cow_temperature" json:"cow_temperature"`
	MilkGiven      float64            `bson:"milk_given" json:"milk_given"`
	MedicineGiven  bool               `bson:"medicine_given" json:"medicine_given"`
	Note           string             `bson:"note,omitempty" json:"note,omitempty"`
}

// CowHealthInput is the create/update payload for a health log. Every field
// except Note is required; MedicineGiven and the numeric fields are pointers
// so that false and zero still count as present.
type CowHealthInput struct {
	Date           string   `json:"date" binding:"required"`
	Shift          string   `json:"shift" binding:"required"`
	CowName        string   `json:"cow_name" binding:"required"`
	CowTemperature *float64 `json:"cow_temperature" binding:"required"`
	MilkGiven      *float64 `json:"milk_given" binding:"required"`
	MedicineGiven  *bool    `json:"medicine_given" binding:"required"`
	Note           string   `json:"note"`
}

// ToLog materializes a stored record from the payload.
func (in CowHealthInput) ToLog() CowHealthLog {
	log := CowHealthLog{
		Date:    in.Date,
		Shift:   in.Shift,
		CowName: in.CowName,
		Note:    in.Note,
	}
	if in.CowTemperature != nil {
		log.CowTemperature = *in.CowTemperature
	}
	if in.MilkGiven != nil {
		log.MilkGiven = *in.MilkGiven
	}
	if in.MedicineGiven != nil {
		log.MedicineGiven = *in.MedicineGiven
	}
	return log
}
