package movie

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nmtan/cinelog/internal/platform/middleware"
	requestutil "github.com/nmtan/cinelog/internal/platform/request"
	"github.com/nmtan/cinelog/internal/platform/respond"
	"github.com/nmtan/cinelog/pkg/pagination"
	"github.com/nmtan/cinelog/pkg/query"
	"github.com/nmtan/cinelog/pkg/uuid"
)

// Handler exposes the movie catalog over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the movie HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the catalog routes onto the given router. Reads are public;
// mutations require an authenticated caller.
func (h *Handler) Register(router chi.Router) {
	router.Get("/", h.List)
	router.Get("/{idOrSlug}", h.Get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", h.Create)
		protected.Put("/{id}", h.Update)
		protected.Delete("/{id}", h.Delete)
	})
}

// movieRequest is the write payload for both create and update. Identifiers
// are never part of the body: the id comes from the URL (update) or is
// generated (create), and the slug is derived from title and year.
type movieRequest struct {
	Title         string   `json:"title"`
	YearOfRelease int      `json:"yearOfRelease"`
	Genres        []string `json:"genres"`
}

// Create handles POST /movies.
func (h *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var payload movieRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	m := &Movie{
		Title:         payload.Title,
		YearOfRelease: payload.YearOfRelease,
		Genres:        payload.Genres,
	}

	if err := h.service.Create(request.Context(), m); err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Location", "/api/v1/movies/"+m.ID)
	respond.Created(writer, m)
}

// Get handles GET /movies/{idOrSlug}. A path segment that parses as a UUID is
// treated as an id, anything else as a slug.
func (h *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	idOrSlug := requestutil.Param(request, "idOrSlug")
	userID := requestutil.UserID(request)

	var (
		m   *Movie
		err error
	)
	if uuid.IsValid(idOrSlug) {
		m, err = h.service.GetByID(request.Context(), idOrSlug, userID)
	} else {
		m, err = h.service.GetBySlug(request.Context(), idOrSlug, userID)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, m)
}

// List handles GET /movies with optional title, year, sort, page and limit
// query parameters.
func (h *Handler) List(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	page := pagination.FromRequest(request)
	sortField, sortOrder := parseSort(query.Get(values, "sort"))

	options := GetAllOptions{
		Title:     query.Get(values, "title"),
		Year:      query.OptionalInt(values, "year"),
		SortField: sortField,
		SortOrder: sortOrder,
		Page:      page.Page,
		PageSize:  page.Limit,
		UserID:    requestutil.UserID(request),
	}

	movies, total, err := h.service.GetAll(request.Context(), options)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, movies, pagination.NewMeta(page.Page, page.Limit, total))
}

// Update handles PUT /movies/{id}. The payload fully replaces the movie's
// content, genre set included.
func (h *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	var payload movieRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	m := &Movie{
		ID:            requestutil.Param(request, "id"),
		Title:         payload.Title,
		YearOfRelease: payload.YearOfRelease,
		Genres:        payload.Genres,
	}

	updated, err := h.service.Update(request.Context(), m, requestutil.UserID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// Delete handles DELETE /movies/{id}.
func (h *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	if err := h.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// parseSort splits a sort expression into field and direction. A leading "-"
// means descending, an optional leading "+" ascending. The field itself is
// validated later against the allow list; nothing here reaches a query.
func parseSort(raw string) (SortField, SortOrder) {
	if raw == "" {
		return SortFieldNone, SortOrderUnsorted
	}

	order := SortOrderAscending
	switch {
	case strings.HasPrefix(raw, "-"):
		order = SortOrderDescending
		raw = raw[1:]
	case strings.HasPrefix(raw, "+"):
		raw = raw[1:]
	}

	return SortField(strings.ToLower(raw)), order
}
