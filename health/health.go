package health

import (
	"net/http"
	"os"

	"banquet/db"
	"banquet/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Store *db.Store
}

func NewHandler(store *db.Store) *Handler {
	return &Handler{Store: store}
}

// Root is the liveness message.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Seating API ready"})
}

// TestDatabase reports store connectivity. It never fails: every store error
// is rendered as a status string in the body instead of propagating.
func (h *Handler) TestDatabase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := utils.M{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if h.Store.Name() != "" {
		resp["database"] = "✅ Available"
		if os.Getenv("DATABASE_URL") != "" {
			resp["database_url"] = "✅ Set"
		} else {
			resp["database_url"] = "❌ Not Set"
		}
		resp["database_name"] = h.Store.Name()
		resp["connection_status"] = "Connected"

		cols, err := h.Store.Collections(r.Context())
		if err != nil {
			resp["database"] = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		} else {
			if len(cols) > 10 {
				cols = cols[:10]
			}
			resp["collections"] = cols
			resp["database"] = "✅ Connected & Working"
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
