package tables

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"banquet/db"
	"banquet/events"
	"banquet/models"
	"banquet/rdx"
	"banquet/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CacheKey holds the cached /tables response; the events sink drops it
// whenever a layout changes.
const CacheKey = "tables:all"

const cacheTTL = 30 * time.Second

// Store is the slice of the document store the table handlers need.
type Store interface {
	Count(ctx context.Context, coll string) (int64, error)
	Insert(ctx context.Context, coll string, doc any) (primitive.ObjectID, error)
	FindAll(ctx context.Context, coll string, filter bson.M, out any) error
}

type Handler struct {
	store Store
	cache *rdx.Conn
	emit  *events.Emitter
}

func NewHandler(store Store, cache *rdx.Conn, emit *events.Emitter) *Handler {
	return &Handler{store: store, cache: cache, emit: emit}
}

// List returns every table with its id surfaced as a string. Served from the
// redis cache when warm; no pagination, store-native order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var items []models.Table
	if !h.cache.GetJSON(ctx, CacheKey, &items) {
		if err := h.store.FindAll(ctx, db.TableColl, bson.M{}, &items); err != nil {
			writeStoreError(w, err)
			return
		}
		if items == nil {
			items = []models.Table{}
		}
		h.cache.SetJSON(ctx, CacheKey, items, cacheTTL)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items})
}

// Seed inserts the demo layout iff the table collection is empty. The
// emptiness check and the inserts are separate store calls, so two concurrent
// first-calls can both pass the check and double-seed; acceptable for a
// convenience endpoint, do not rely on it for correctness.
func (h *Handler) Seed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	existing, err := h.store.Count(ctx, db.TableColl)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if existing > 0 {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok", "seeded": false, "count": existing})
		return
	}

	for _, t := range DemoTables() {
		t.Normalize()
		if err := t.Validate(); err != nil {
			log.Printf("tables: invalid demo fixture %q: %v", t.Name, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Seed fixture invalid")
			return
		}
		if _, err := h.store.Insert(ctx, db.TableColl, t); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	count, err := h.store.Count(ctx, db.TableColl)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.emit.Emit(ctx, events.Event{Type: "seed"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok", "seeded": true, "count": count})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrUnavailable) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database not configured")
		return
	}
	log.Printf("tables: store error: %v", err)
	utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
}
