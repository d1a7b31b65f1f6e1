package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmtan/cinelog/internal/platform/middleware"
	requestutil "github.com/nmtan/cinelog/internal/platform/request"
	"github.com/nmtan/cinelog/internal/platform/respond"
)

// Handler exposes the rating endpoints over HTTP. All of them require an
// authenticated caller.
type Handler struct {
	service *Service
}

// NewHandler constructs the rating HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterMovieRoutes mounts the per-movie rating endpoints onto the movies
// router, nested under the movie id.
func (h *Handler) RegisterMovieRoutes(router chi.Router) {
	router.Get("/{id}/ratings", h.GetForMovie)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Put("/{id}/ratings", h.Rate)
		protected.Delete("/{id}/ratings", h.DeleteRating)
	})
}

// Register mounts the user-scoped rating routes.
func (h *Handler) Register(router chi.Router) {
	router.With(middleware.RequireAuth).Get("/me", h.ListMine)
}

type rateRequest struct {
	Rating int `json:"rating"`
}

type aggregateResponse struct {
	Rating     *float64 `json:"rating"`
	UserRating *int     `json:"userRating,omitempty"`
}

// GetForMovie handles GET /movies/{id}/ratings. It is public: anonymous
// callers get the aggregate, authenticated callers additionally get their
// own vote.
func (h *Handler) GetForMovie(writer http.ResponseWriter, request *http.Request) {
	movieID := requestutil.Param(request, "id")
	userID := requestutil.UserID(request)

	aggregate, userRating, err := h.service.Aggregate(request.Context(), movieID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, aggregateResponse{Rating: aggregate, UserRating: userRating})
}

// Rate handles PUT /movies/{id}/ratings. The semantics are an upsert, so PUT
// is idempotent: repeating the call leaves the same single vote.
func (h *Handler) Rate(writer http.ResponseWriter, request *http.Request) {
	var payload rateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movieID := requestutil.Param(request, "id")
	if err := h.service.Rate(request.Context(), movieID, userID, payload.Rating); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// DeleteRating handles DELETE /movies/{id}/ratings.
func (h *Handler) DeleteRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movieID := requestutil.Param(request, "id")
	if err := h.service.Delete(request.Context(), movieID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// ListMine handles GET /ratings/me.
func (h *Handler) ListMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ratings, err := h.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ratings)
}
