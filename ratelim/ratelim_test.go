package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitBlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handle := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reserve", nil)
		req.RemoteAddr = "10.0.0.1:55555"
		handle(rec, req, nil)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("first two requests = %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", codes[2])
	}
}

func TestLimitTracksClientsSeparately(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handle := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/seed", nil)
		req.RemoteAddr = addr
		handle(rec, req, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("fresh client %s got %d, want 200", addr, rec.Code)
		}
	}
}
