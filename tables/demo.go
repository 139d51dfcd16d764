package tables

import (
	"fmt"

	"banquet/models"
)

// DemoTables is the fixture Seed inserts into an empty collection: three
// tables with varying shape, seat count, and a few pre-marked reservations.
func DemoTables() []models.Table {
	return []models.Table{
		{
			Name:     "Aurora Circle",
			Shape:    models.ShapeRound,
			X:        200,
			Y:        180,
			Width:    160,
			Height:   160,
			Rotation: 0,
			Color:    "#7dd3fc",
			Seats:    demoSeats(10, "A", nil),
		},
		{
			Name:     "Imperial Banquet",
			Shape:    models.ShapeRect,
			X:        520,
			Y:        240,
			Width:    320,
			Height:   140,
			Rotation: 0,
			Color:    "#f0abfc",
			Seats:    demoSeats(14, "B", func(i int) bool { return i%3 == 0 }),
		},
		{
			Name:     "Velvet Nook",
			Shape:    models.ShapeRound,
			X:        900,
			Y:        420,
			Width:    140,
			Height:   140,
			Rotation: 15,
			Color:    "#a7f3d0",
			Seats:    demoSeats(8, "V", nil),
		},
	}
}

func demoSeats(n int, prefix string, reserved func(int) bool) []models.Seat {
	seats := make([]models.Seat, n)
	for i := range seats {
		seats[i] = models.Seat{
			Index: i,
			Label: fmt.Sprintf("%s%d", prefix, i+1),
		}
		if reserved != nil {
			seats[i].Reserved = reserved(i)
		}
	}
	return seats
}
