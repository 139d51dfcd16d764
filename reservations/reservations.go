package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"banquet/db"
	"banquet/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrBadTableID          = errors.New("invalid table id")
	ErrTableNotFound       = errors.New("table not found")
	ErrBadSeatIndex        = errors.New("invalid seat index")
	ErrSeatTaken           = errors.New("seat already reserved")
	ErrReservationNotFound = errors.New("reservation not found")
)

// Store is the slice of the document store the reservation service needs.
type Store interface {
	ReserveSeat(ctx context.Context, id primitive.ObjectID, idx int) (bool, error)
	FindByID(ctx context.Context, coll string, id primitive.ObjectID, out any) error
	FindAll(ctx context.Context, coll string, filter bson.M, out any) error
	Insert(ctx context.Context, coll string, doc any) (primitive.ObjectID, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Reserve marks one seat taken and appends the reservation record.
//
// The seat flip is a single conditional update at the store: the filter
// matches only while seats[i] exists and is still free, so of any number of
// concurrent attempts on the same seat exactly one can succeed — there is no
// read-check-write window and no in-process locking, which keeps this correct
// across server instances. The record is appended only after the flip, so a
// failed attempt never leaves a log entry.
//
// Seats are addressed by array position. The seat's own index field is
// display metadata and never consulted here.
func (s *Service) Reserve(ctx context.Context, req models.ReserveRequest) (models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return models.Reservation{}, err
	}

	oid, err := primitive.ObjectIDFromHex(req.TableID)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("%w: %q", ErrBadTableID, req.TableID)
	}

	ok, err := s.store.ReserveSeat(ctx, oid, req.SeatIndex)
	if err != nil {
		return models.Reservation{}, err
	}
	if !ok {
		// The conditional update matched nothing; read the table once to say why.
		var table models.Table
		err := s.store.FindByID(ctx, db.TableColl, oid, &table)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Reservation{}, ErrTableNotFound
		}
		if err != nil {
			return models.Reservation{}, err
		}
		if req.SeatIndex >= len(table.Seats) {
			return models.Reservation{}, fmt.Errorf("%w: %d of %d seats", ErrBadSeatIndex, req.SeatIndex, len(table.Seats))
		}
		return models.Reservation{}, ErrSeatTaken
	}

	rec := models.Reservation{
		ID:        uuid.NewString(),
		TableID:   oid.Hex(),
		SeatIndex: req.SeatIndex,
		Name:      req.Name,
		Note:      req.Note,
		CreatedAt: time.Now().Unix(),
	}
	if _, err := s.store.Insert(ctx, db.ReservationColl, rec); err != nil {
		// Seat is flipped but the log insert failed; surface it, no retries.
		return models.Reservation{}, fmt.Errorf("reservation record insert: %w", err)
	}
	return rec, nil
}

// ListForTable returns the reservation log for one table.
func (s *Service) ListForTable(ctx context.Context, tableID string) ([]models.Reservation, error) {
	oid, err := primitive.ObjectIDFromHex(tableID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadTableID, tableID)
	}

	var table models.Table
	if err := s.store.FindByID(ctx, db.TableColl, oid, &table); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	var recs []models.Reservation
	if err := s.store.FindAll(ctx, db.ReservationColl, bson.M{"table_id": oid.Hex()}, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []models.Reservation{}
	}
	return recs, nil
}

// Get loads a single reservation record by its id.
func (s *Service) Get(ctx context.Context, id string) (models.Reservation, error) {
	var recs []models.Reservation
	if err := s.store.FindAll(ctx, db.ReservationColl, bson.M{"id": id}, &recs); err != nil {
		return models.Reservation{}, err
	}
	if len(recs) == 0 {
		return models.Reservation{}, ErrReservationNotFound
	}
	return recs[0], nil
}

// TableName resolves a table's display name for the printed confirmation;
// empty when the table has since disappeared (weak reference, no cascade).
func (s *Service) TableName(ctx context.Context, tableID string) string {
	oid, err := primitive.ObjectIDFromHex(tableID)
	if err != nil {
		return ""
	}
	var table models.Table
	if err := s.store.FindByID(ctx, db.TableColl, oid, &table); err != nil {
		return ""
	}
	return table.Name
}
