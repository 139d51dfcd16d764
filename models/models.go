package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrValidation wraps every boundary validation failure; handlers map it to 400.
var ErrValidation = errors.New("validation failed")

type TableShape string

const (
	ShapeRound TableShape = "round"
	ShapeRect  TableShape = "rect"
)

// Seat is embedded in its table and has no identity of its own. Seats are
// addressed by position in the array; Index is display metadata that the seed
// data keeps equal to the position, but the reservation path never reads it.
type Seat struct {
	Index    int    `json:"index" bson:"index"`
	Label    string `json:"label" bson:"label"`
	Reserved bool   `json:"reserved" bson:"reserved"`
}

type Table struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Shape    TableShape         `json:"shape" bson:"shape"`
	X        float64            `json:"x" bson:"x"`
	Y        float64            `json:"y" bson:"y"`
	Width    float64            `json:"width" bson:"width"`
	Height   float64            `json:"height" bson:"height"`
	Rotation float64            `json:"rotation" bson:"rotation"`
	Color    string             `json:"color,omitempty" bson:"color,omitempty"`
	Seats    []Seat             `json:"seats" bson:"seats"`
}

// Normalize fills the documented defaults before validation or insert.
func (t *Table) Normalize() {
	if t.Shape == "" {
		t.Shape = ShapeRound
	}
	if t.Width == 0 {
		t.Width = 120
	}
	if t.Height == 0 {
		t.Height = 120
	}
}

func (t *Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if t.Shape != ShapeRound && t.Shape != ShapeRect {
		return fmt.Errorf("%w: shape must be round or rect", ErrValidation)
	}
	if t.X < 0 || t.Y < 0 {
		return fmt.Errorf("%w: position must be non-negative", ErrValidation)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive", ErrValidation)
	}
	for _, s := range t.Seats {
		if s.Index < 0 {
			return fmt.Errorf("%w: seat index must be non-negative", ErrValidation)
		}
	}
	return nil
}

// Reservation is an append-only log record; never mutated after insert.
// TableID is a weak reference — deleting a table does not cascade here.
type Reservation struct {
	ID        string `json:"id" bson:"id"`
	TableID   string `json:"table_id" bson:"table_id"`
	SeatIndex int    `json:"seat_index" bson:"seat_index"`
	Name      string `json:"name" bson:"name"`
	Note      string `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

type ReserveRequest struct {
	TableID   string `json:"table_id"`
	SeatIndex int    `json:"seat_index"`
	Name      string `json:"name"`
	Note      string `json:"note,omitempty"`
}

func (r *ReserveRequest) Validate() error {
	if r.TableID == "" {
		return fmt.Errorf("%w: table_id is required", ErrValidation)
	}
	if r.SeatIndex < 0 {
		return fmt.Errorf("%w: seat_index must be non-negative", ErrValidation)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}
