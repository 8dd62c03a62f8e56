package handler

import (
	"github.com/elitedog/backend/internal/repository"
)

// Handler serves the store-level endpoints that have no service of their own.
type Handler struct {
	db repository.DB
}

func New(db repository.DB) *Handler {
	return &Handler{db: db}
}
