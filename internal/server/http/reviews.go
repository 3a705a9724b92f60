package http

import (
	"net/http"

	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/internal/server/service"
	"github.com/galhub/galhub/pkg/galhubsdk"
	"github.com/galhub/galhub/pkg/httpx"
)

type CreateReviewHandler struct {
	Reviews *service.ReviewService
}

func (h *CreateReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonUnauthorized, "no access token provided")
		return
	}

	var req galhubsdk.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.GameID == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ReasonValidation, "game_id is required")
		return
	}

	review, err := h.Reviews.CreateReview(ctx, userID, req.GameID, service.ReviewParams{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toReviewResponse(review))
}

type GameReviewsHandler struct {
	Reviews *service.ReviewService
}

func (h *GameReviewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListByGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toReviewResponses(reviews))
}

type UserReviewsHandler struct {
	Reviews *service.ReviewService
}

func (h *UserReviewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListByUser(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toReviewResponses(reviews))
}

type UpdateReviewHandler struct {
	Reviews *service.ReviewService
}

func (h *UpdateReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonUnauthorized, "no access token provided")
		return
	}

	var req galhubsdk.ReviewUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.Reviews.UpdateReview(ctx, userID, r.PathValue("id"), service.ReviewParams{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toReviewResponse(review))
}

type DeleteReviewHandler struct {
	Reviews  *service.ReviewService
	Identity *service.IdentityService
}

// ServeHTTP deletes a review. Authors delete their own; admins may
// delete anyone's. The role comes from the store, not the token.
func (h *DeleteReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonUnauthorized, "no access token provided")
		return
	}

	role, found, err := h.Identity.RoleByID(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if !found {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ReasonUnauthorized, "invalid or expired access token")
		return
	}
	isAdmin := role == string(domain.RoleAdmin)

	if err := h.Reviews.DeleteReview(ctx, userID, r.PathValue("id"), isAdmin); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, galhubsdk.StatusResponse{Status: "review deleted"})
}
