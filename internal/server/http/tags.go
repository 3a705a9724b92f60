package http

import (
	"net/http"

	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/pkg/galhubsdk"
	"github.com/galhub/galhub/pkg/httpx"
)

type ListTagsHandler struct {
	Catalog *service.CatalogService
}

func (h *ListTagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Catalog.ListTags(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	out := make([]galhubsdk.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

type CreateTagHandler struct {
	Catalog *service.CatalogService
}

func (h *CreateTagHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req galhubsdk.TagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tag, err := h.Catalog.CreateTag(r.Context(), req.Name)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTagResponse(tag))
}
