// internal/domain/client/service.go
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var ErrClientNotFound = errors.New("client not found")

// CreateClientRequest is the payload for registering a client manually.
type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

// Service handles client records
type Service struct {
	db *gorm.DB
}

// NewService creates a new client service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create registers a client under an ambassador's ref. Registering the
// same email twice for one ref updates the existing record instead.
func (s *Service) Create(ctx context.Context, ref string, req *CreateClientRequest) (*Client, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing Client
	err := s.db.WithContext(ctx).Where("ref = ? AND LOWER(email) = ?", ref, email).First(&existing).Error
	if err == nil {
		existing.Name = req.Name
		if req.Phone != "" {
			existing.Phone = req.Phone
		}
		if req.Country != "" {
			existing.Country = req.Country
		}
		if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update client: %w", err)
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check client: %w", err)
	}

	c := &Client{
		Name:    req.Name,
		Email:   email,
		Phone:   req.Phone,
		Country: req.Country,
		Ref:     ref,
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// EnsureRegistered registers a buyer as a client of the ref if no
// record exists yet. Used when orders arrive for unknown buyers.
func (s *Service) EnsureRegistered(ctx context.Context, ref, name, email, phone, country string) error {
	ref = strings.ToLower(strings.TrimSpace(ref))
	email = strings.ToLower(strings.TrimSpace(email))
	if ref == "" || email == "" {
		return nil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&Client{}).
		Where("ref = ? AND LOWER(email) = ?", ref, email).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check client: %w", err)
	}
	if count > 0 {
		return nil
	}

	return s.db.WithContext(ctx).Create(&Client{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Country: country,
		Ref:     ref,
	}).Error
}

// ListByRef lists the clients of one ambassador.
func (s *Service) ListByRef(ctx context.Context, ref string) ([]Client, error) {
	var clients []Client
	err := s.db.WithContext(ctx).
		Where("ref = ?", strings.ToLower(ref)).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// ListByRefs lists the clients across a set of ambassador refs.
func (s *Service) ListByRefs(ctx context.Context, refs []string) ([]Client, error) {
	if len(refs) == 0 {
		return []Client{}, nil
	}

	var clients []Client
	err := s.db.WithContext(ctx).
		Where("ref IN ?", refs).
		Order("created_at DESC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
