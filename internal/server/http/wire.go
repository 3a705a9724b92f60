package http

import (
	"github.com/galhub/galhub/internal/server/domain"
	"github.com/galhub/galhub/pkg/galhubsdk"
)

// Converters from domain types to the SDK wire types. The password hash
// never crosses this boundary.

func toUserResponse(u domain.User) galhubsdk.UserResponse {
	return galhubsdk.UserResponse{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toTagResponse(t domain.Tag) galhubsdk.TagResponse {
	return galhubsdk.TagResponse{TagID: t.ID, Name: t.Name}
}

func toGameResponse(g domain.Game) galhubsdk.GameResponse {
	tags := make([]galhubsdk.TagResponse, 0, len(g.Tags))
	for _, t := range g.Tags {
		tags = append(tags, toTagResponse(t))
	}
	return galhubsdk.GameResponse{
		GameID:      g.ID,
		Title:       g.Title,
		Alias:       g.Alias,
		Link:        g.Link,
		CoverImage:  g.CoverImage,
		Description: g.Description,
		Rating:      g.Rating,
		Tags:        tags,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func toGameResponses(games []domain.Game) []galhubsdk.GameResponse {
	out := make([]galhubsdk.GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g))
	}
	return out
}

func toReviewResponse(rv domain.Review) galhubsdk.ReviewResponse {
	return galhubsdk.ReviewResponse{
		ReviewID:  rv.ID,
		GameID:    rv.GameID,
		UserID:    rv.UserID,
		Username:  rv.Username,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}

func toReviewResponses(reviews []domain.Review) []galhubsdk.ReviewResponse {
	out := make([]galhubsdk.ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, toReviewResponse(rv))
	}
	return out
}
