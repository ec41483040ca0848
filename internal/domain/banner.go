package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type Banner struct {
	ID     string `json:"id"`
	Image  string `json:"image"`
	Alt    string `json:"alt"`
	Order  int    `json:"order"`
	Active bool   `json:"active"`
}

type BannerDraft struct {
	Image string
	Alt   string
	Order int
}

func (d BannerDraft) Build() (Banner, error) {
	if d.Image == "" {
		return Banner{}, fmt.Errorf("%w: banner image is required", ErrInvalidInput)
	}
	return Banner{
		ID:     uuid.NewString(),
		Image:  d.Image,
		Alt:    d.Alt,
		Order:  d.Order,
		Active: true,
	}, nil
}
