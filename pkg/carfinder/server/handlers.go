package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/browse"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/query"
)

// BrandsResponse lists the brands available for filtering.
type BrandsResponse struct {
	Brands []string `json:"brands"`
	Error  string   `json:"error,omitempty"`
}

// MembershipResponse reports whether a car is on the wishlist.
type MembershipResponse struct {
	ID     int  `json:"id"`
	Wished bool `json:"wished"`
}

// DarkModeRequest is both the body and the response of the dark mode
// preference endpoints.
type DarkModeRequest struct {
	DarkMode bool `json:"darkMode"`
}

// GetCars defines a GET handler to list one page of the filtered catalog
func (h *httpServer) GetCars(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()
	spec := query.ParseFilter(vars)
	page, size := query.ParsePage(vars, h.browser.PageSize())

	res := h.browser.Listing(r.Context(), spec, page, size)
	h.writeJSON(w, r, http.StatusOK, res)
}

// GetCar defines a GET handler to fetch a single car
func (h *httpServer) GetCar(w http.ResponseWriter, r *http.Request) {
	id, err := validateID(mux.Vars(r))
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := h.browser.Detail(r.Context(), id)
	switch {
	case errors.Is(err, dal.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, err)
	case err != nil:
		h.log.Warn("car detail fetch failed", "id", id, "err", err)
		h.writeError(w, r, http.StatusBadGateway, errors.New(browse.FetchFailed))
	default:
		h.writeJSON(w, r, http.StatusOK, res)
	}
}

// GetBrands defines a GET handler to list the catalog brands
func (h *httpServer) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.browser.Brands(r.Context())
	if err != nil {
		h.log.Warn("brand list fetch failed", "err", err)
		h.writeJSON(w, r, http.StatusOK, BrandsResponse{Brands: []string{}, Error: browse.FetchFailed})
		return
	}
	h.writeJSON(w, r, http.StatusOK, BrandsResponse{Brands: brands})
}

// GetWishlist defines a GET handler to list the wished cars
func (h *httpServer) GetWishlist(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.browser.Wishlist(r.Context()))
}

// GetWishlistMember defines a GET handler reporting wishlist membership
func (h *httpServer) GetWishlistMember(w http.ResponseWriter, r *http.Request) {
	id, err := validateID(mux.Vars(r))
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, MembershipResponse{ID: id, Wished: h.browser.IsWished(r.Context(), id)})
}

// ToggleWishlist defines a POST handler flipping wishlist membership
func (h *httpServer) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := validateID(mux.Vars(r))
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, MembershipResponse{ID: id, Wished: h.browser.Toggle(r.Context(), id)})
}

// GetDarkMode defines a GET handler for the dark mode preference
func (h *httpServer) GetDarkMode(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, DarkModeRequest{DarkMode: h.prefs.DarkMode(r.Context())})
}

// PutDarkMode defines a PUT handler for the dark mode preference
func (h *httpServer) PutDarkMode(w http.ResponseWriter, r *http.Request) {
	var req DarkModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}
	if err := h.prefs.SetDarkMode(r.Context(), req.DarkMode); err != nil {
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, req)
}

// Healthcheck reports liveness
func (h *httpServer) Healthcheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("OK")); err != nil {
		h.log.Error("Unable to write healthcheck", "err", err)
	}
}

func validateID(vars map[string]string) (int, error) {
	raw := vars["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("id must be a number: %q", raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be a positive number: %d", id)
	}
	return id, nil
}

func (h *httpServer) writeJSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Unable to encode JSON response", "path", r.URL.Path, "err", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *httpServer) writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	h.log.Debug("request failed", "path", r.URL.Path, "code", code, "err", err)
	h.writeJSON(w, r, code, errorResponse{Error: err.Error()})
}
