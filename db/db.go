package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the service.
const (
	TableColl       = "table"
	ReservationColl = "reservation"
)

// ErrUnavailable is returned by every Store operation when no database
// connection was configured at startup (DATABASE_URL unset or connect failed).
var ErrUnavailable = errors.New("database not configured")

// Store wraps the Mongo client for one database. A nil *Store is a valid
// zero value: every operation on it fails with ErrUnavailable, so the server
// can run without a database and report it through the diagnostics endpoint.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials the database and pings it once so a bad URL fails at startup
// rather than on the first request.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	opts := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{Client: client, DB: client.Database(name)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

func (s *Store) ready() error {
	if s == nil || s.DB == nil {
		return ErrUnavailable
	}
	return nil
}

// Name reports the database name for diagnostics.
func (s *Store) Name() string {
	if s == nil || s.DB == nil {
		return ""
	}
	return s.DB.Name()
}

// Collections lists the collection names in the database.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.DB.ListCollectionNames(ctx, bson.M{})
}

// Insert adds one document and returns its assigned id.
func (s *Store) Insert(ctx context.Context, coll string, doc any) (primitive.ObjectID, error) {
	if err := s.ready(); err != nil {
		return primitive.NilObjectID, err
	}
	res, err := s.DB.Collection(coll).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

// FindAll decodes every document matching filter into out (a slice pointer).
func (s *Store) FindAll(ctx context.Context, coll string, filter bson.M, out any) error {
	if err := s.ready(); err != nil {
		return err
	}
	cur, err := s.DB.Collection(coll).Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}

// FindByID decodes one document into out. Returns mongo.ErrNoDocuments when absent.
func (s *Store) FindByID(ctx context.Context, coll string, id primitive.ObjectID, out any) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.DB.Collection(coll).FindOne(ctx, bson.M{"_id": id}).Decode(out)
}

// Count reports the number of documents in a collection.
func (s *Store) Count(ctx context.Context, coll string) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.DB.Collection(coll).CountDocuments(ctx, bson.M{})
}

// SetField replaces a single field of one document.
func (s *Store) SetField(ctx context.Context, coll string, id primitive.ObjectID, field string, value any) error {
	if err := s.ready(); err != nil {
		return err
	}
	_, err := s.DB.Collection(coll).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{field: value}},
	)
	return err
}

// ReserveSeat flips seats[idx].reserved from false to true in one conditional
// update. The filter only matches while the seat exists and is still free, so
// the flip succeeds or fails atomically at the store; two racing callers can
// never both match. Returns false when nothing matched (missing table, index
// past the end of the array, or seat already taken — the caller classifies by
// reading the document).
func (s *Store) ReserveSeat(ctx context.Context, id primitive.ObjectID, idx int) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	seat := fmt.Sprintf("seats.%d", idx)
	res, err := s.DB.Collection(TableColl).UpdateOne(ctx,
		bson.M{
			"_id":              id,
			seat:               bson.M{"$exists": true},
			seat + ".reserved": false,
		},
		bson.M{"$set": bson.M{seat + ".reserved": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
