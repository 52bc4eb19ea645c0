package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Eursukkul/hotel-reservation/internal/dto"
	"github.com/Eursukkul/hotel-reservation/internal/models"
	"github.com/Eursukkul/hotel-reservation/internal/repository"
	"go.uber.org/zap"
)

var ErrCustomerNotFound = errors.New("customer not found")

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, name string) (*models.Customer, error)
	ModifyCustomer(ctx context.Context, name string, update models.Customer) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, name string) error
	DisplayCustomer(ctx context.Context, w io.Writer, name string) error
}

type customerService struct {
	store repository.RecordStore
	log   *zap.Logger
}

func NewCustomerService(store repository.RecordStore, log *zap.Logger) CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &customerService{store: store, log: log}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if err := s.store.Create(ctx, customer.Name, customer.Fields()); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	s.log.Info("customer created", zap.String("customer", customer.Name))
	return nil
}

func (s *customerService) GetCustomer(ctx context.Context, name string) (*models.Customer, error) {
	fields, err := s.store.Read(ctx, name)
	if err != nil {
		return nil, customerErr(name, err)
	}
	var c models.Customer
	if err := fields.Decode(&c); err != nil {
		return nil, fmt.Errorf("customer %s: %w", name, err)
	}
	return &c, nil
}

// ModifyCustomer replaces every field of the named customer. When the name
// changes the record moves to the new key.
func (s *customerService) ModifyCustomer(ctx context.Context, name string, update models.Customer) (*models.Customer, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	if update.Name != name {
		if err := ensureFree(ctx, s.store, update.Name); err != nil {
			return nil, err
		}
	}
	if err := s.store.Update(ctx, name, update.Fields()); err != nil {
		return nil, customerErr(name, err)
	}
	if update.Name != name {
		if err := rekey(ctx, s.store, name, update.Name); err != nil {
			return nil, fmt.Errorf("rename customer %s: %w", name, err)
		}
	}
	s.log.Info("customer modified", zap.String("customer", name), zap.String("name", update.Name))
	return &update, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return customerErr(name, err)
	}
	s.log.Info("customer deleted", zap.String("customer", name))
	return nil
}

func (s *customerService) DisplayCustomer(ctx context.Context, w io.Writer, name string) error {
	c, err := s.GetCustomer(ctx, name)
	if err != nil {
		return err
	}
	return dto.WriteCustomer(w, dto.ToCustomerView(c))
}

func customerErr(name string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, name)
	}
	return fmt.Errorf("customer %s: %w", name, err)
}
