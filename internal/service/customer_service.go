package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/chihoangvnn/sss-sub001/internal/model"
	"github.com/chihoangvnn/sss-sub001/internal/repository"
	"github.com/chihoangvnn/sss-sub001/internal/tabs"
)

// CustomerService fronts the customer directory collaborator: search by name
// or phone, and turn a selection into the opaque reference a tab stores.
type CustomerService interface {
	Search(ctx context.Context, query string) ([]model.Customer, error)
	ResolveRef(ctx context.Context, id uuid.UUID) (*tabs.CustomerRef, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Search(ctx context.Context, query string) ([]model.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, query, 20)
}

func (s *customerService) ResolveRef(ctx context.Context, id uuid.UUID) (*tabs.CustomerRef, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &tabs.CustomerRef{ID: c.ID, Name: c.Name, Phone: c.Phone}, nil
}
