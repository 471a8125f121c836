package http

import (
	"github.com/khangtran/folio/internal/domain/portfolio"
)

// The wire shape mirrors the persisted representation exactly, so the domain
// types serialize directly; only request bodies need dedicated types here.

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetFieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

type SetSocialRequest struct {
	Platform string `json:"platform" binding:"required,oneof=github linkedin twitter website"`
	Value    string `json:"value"`
}

type UpdateListItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type EnhanceRequest struct {
	Text string `json:"text" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=bio job project"`
}

type EnhanceResponse struct {
	Text string `json:"text"`
}

type SuggestSkillsRequest struct {
	Bio string `json:"bio" binding:"required"`
}

type SuggestSkillsResponse struct {
	Skills []string `json:"skills"`
}

type PublishResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type AddListItemResponse struct {
	ID      string            `json:"id"`
	Profile portfolio.Profile `json:"profile"`
}

type UpdateListItemResponse struct {
	Updated bool              `json:"updated"`
	Profile portfolio.Profile `json:"profile"`
}
