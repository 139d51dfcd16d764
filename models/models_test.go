package models

import (
	"errors"
	"testing"
)

func validTable() Table {
	return Table{
		Name:   "Window Two-Top",
		Shape:  ShapeRect,
		X:      40,
		Y:      60,
		Width:  120,
		Height: 80,
		Seats: []Seat{
			{Index: 0, Label: "W1"},
			{Index: 1, Label: "W2"},
		},
	}
}

func TestTableValidate(t *testing.T) {
	tbl := validTable()
	if err := tbl.Validate(); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Table)
	}{
		{"missing name", func(t *Table) { t.Name = "" }},
		{"bad shape", func(t *Table) { t.Shape = "oval" }},
		{"negative x", func(t *Table) { t.X = -1 }},
		{"negative y", func(t *Table) { t.Y = -0.5 }},
		{"zero width", func(t *Table) { t.Width = 0 }},
		{"negative height", func(t *Table) { t.Height = -10 }},
		{"negative seat index", func(t *Table) { t.Seats[0].Index = -1 }},
	}
	for _, tc := range cases {
		tbl := validTable()
		tc.mutate(&tbl)
		err := tbl.Validate()
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: error %v does not wrap ErrValidation", tc.name, err)
		}
	}
}

func TestTableNormalizeDefaults(t *testing.T) {
	tbl := Table{Name: "Bare", X: 0, Y: 0}
	tbl.Normalize()
	if tbl.Shape != ShapeRound {
		t.Errorf("default shape = %q, want round", tbl.Shape)
	}
	if tbl.Width != 120 || tbl.Height != 120 {
		t.Errorf("default dimensions = %vx%v, want 120x120", tbl.Width, tbl.Height)
	}
	if err := tbl.Validate(); err != nil {
		t.Errorf("normalized table should validate: %v", err)
	}
}

func TestReserveRequestValidate(t *testing.T) {
	ok := ReserveRequest{TableID: "65f000000000000000000001", SeatIndex: 0, Name: "Alice"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := []ReserveRequest{
		{SeatIndex: 0, Name: "Alice"},
		{TableID: "65f000000000000000000001", SeatIndex: -1, Name: "Alice"},
		{TableID: "65f000000000000000000001", SeatIndex: 0},
	}
	for i, req := range bad {
		if err := req.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: got %v, want ErrValidation", i, err)
		}
	}
}
