package models

import (
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MilkEntry is one persisted milk-collection record.
type MilkEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date         string             `bson:"date" json:"date"`
	Shift        string             `bson:"shift" json:"shift"`
	Qty          float64            `bson:"qty" json:"qty"`
	Fat          float64            `bson:"fat" json:"fat"`
	SNF          float64            `bson:"snf" json:"snf"`
	CLR          float64            `bson:"clr" json:"clr"`
	RatePerLitre float64            `bson:"rate_per_litre" json:"rate_per_litre"`
	Amount       float64            `bson:"amount" json:"amount"` // Derived: Qty * RatePerLitre
	Note         string             `bson:"note,omitempty" json:"note,omitempty"`
}

// MilkEntryInput is the create/update payload for a milk entry. Qty and
// RatePerLitre are required because Amount is derived from them; a
// client-supplied amount is never accepted.
type MilkEntryInput struct {
	Date         string   `json:"date"`
	Shift        string   `json:"shift"`
	Qty          *float64 `json:"qty" binding:"required"`
	Fat          float64  `json:"fat"`
	SNF          float64  `json:"snf"`
	CLR          float64  `json:"clr"`
	RatePerLitre *float64 `json:"rate_per_litre" binding:"required"`
	Note         string   `json:"note"`
}

// ToEntry materializes a stored record from the payload, computing the
// derived amount.
func (in MilkEntryInput) ToEntry() MilkEntry {
	entry := MilkEntry{
		Date:  in.Date,
		Shift: in.Shift,
		Fat:   in.Fat,
		SNF:   in.SNF,
		CLR:   in.CLR,
		Note:  in.Note,
	}
	if in.Qty != nil {
		entry.Qty = *in.Qty
	}
	if in.RatePerLitre != nil {
		entry.RatePerLitre = *in.RatePerLitre
	}
	entry.Amount = Round2(entry.Qty * entry.RatePerLitre)
	return entry
}

// Round2 rounds to two decimal places, the precision used for every monetary
// and quantity output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
