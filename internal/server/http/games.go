package http

import (
	"net/http"
	"strconv"

	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/pkg/galhubsdk"
	"github.com/galhub/galhub/pkg/httpx"
)

type ListGamesHandler struct {
	Catalog *service.CatalogService
}

func (h *ListGamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	search := q.Get("search")

	pageResult, err := h.Catalog.ListGames(r.Context(), page, limit, search)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, galhubsdk.GameListResponse{
		Games: toGameResponses(pageResult.Games),
		Page:  pageResult.Page,
		Limit: pageResult.Limit,
		Total: pageResult.Total,
	})
}

type LatestGamesHandler struct {
	Catalog *service.CatalogService
}

func (h *LatestGamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	games, err := h.Catalog.LatestGames(r.Context(), limit)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGameResponses(games))
}

type PopularGamesHandler struct {
	Catalog *service.CatalogService
}

func (h *PopularGamesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	games, err := h.Catalog.PopularGames(r.Context(), limit)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGameResponses(games))
}

type GetGameHandler struct {
	Catalog *service.CatalogService
}

func (h *GetGameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	game, err := h.Catalog.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGameResponse(game))
}

type CreateGameHandler struct {
	Catalog *service.CatalogService
}

func (h *CreateGameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req galhubsdk.GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	game, err := h.Catalog.CreateGame(r.Context(), gameParams(req))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toGameResponse(game))
}

type UpdateGameHandler struct {
	Catalog *service.CatalogService
}

func (h *UpdateGameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req galhubsdk.GameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	game, err := h.Catalog.UpdateGame(r.Context(), r.PathValue("id"), gameParams(req))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toGameResponse(game))
}

type DeleteGameHandler struct {
	Catalog *service.CatalogService
}

func (h *DeleteGameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, galhubsdk.StatusResponse{Status: "game deleted"})
}

type StatsHandler struct {
	Catalog *service.CatalogService
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Catalog.Stats(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, galhubsdk.StatsResponse{
		GameCount:   stats.Games,
		UserCount:   stats.Users,
		ReviewCount: stats.Reviews,
	})
}

func gameParams(req galhubsdk.GameRequest) service.GameParams {
	return service.GameParams{
		Title:       req.Title,
		Alias:       req.Alias,
		Link:        req.Link,
		CoverImage:  req.CoverImage,
		Description: req.Description,
		Rating:      req.Rating,
		Tags:        req.Tags,
	}
}
