package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/profile      (200 OK)
// PUT v1/profile JSON (200 OK, 400 Bad request)

type ProfileHandler struct {
	getter port.ProfileGetter
	saver  port.ProfileSaver
}

func RegisterProfile(
	mux *http.ServeMux, getter port.ProfileGetter, saver port.ProfileSaver,
) {
	h := ProfileHandler{getter, saver}
	mux.HandleFunc("GET /v1/profile", h.GetProfile)
	mux.HandleFunc("PUT /v1/profile", h.PutProfile)
}

func (h ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	const op = "ProfileHandler.GetProfile"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	p, err := h.getter.GetProfile(r.Context(), cID)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		log.Error("failed to get profile", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, Profile(p))
}

func (h ProfileHandler) PutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "ProfileHandler.PutProfile"
	log := slog.With("op", op)

	cID, ok := clientID(w, r)
	if !ok {
		return
	}

	var req Profile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	res, err := h.saver.SaveProfile(r.Context(), cID, domain.Profile(req))
	if err != nil {
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		log.Error("failed to save profile", "err", err)
		return
	}

	writeJSON(w, log, http.StatusOK, toResultView(res))
}
