package goal

import (
	"context"
	"time"

	"github.com/saulo-duarte/accountability-buddy/internal/storage"
)

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(ctx context.Context, slots storage.SlotStore, namespace string, loc *time.Location) (*Container, error) {
	store := NewStore(WithLocation(loc))
	repo := NewRepository(slots, namespace)
	service := NewService(store, repo)
	if err := service.Load(ctx); err != nil {
		return nil, err
	}
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}, nil
}
