// internal/domain/referral/accounts.go
package referral

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/ambassador-platform/internal/pkg/auth"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotOwned           = errors.New("account does not belong to this network")
)

// RegisterBusinessRequest is the payload for business self-registration.
type RegisterBusinessRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Country       string `json:"country" binding:"required"`
	CatalogDomain string `json:"catalog_domain"`
	MPAccessToken string `json:"mp_access_token"`
	MPPublicKey   string `json:"mp_public_key"`
}

// CreateDistributorRequest is the payload for a business creating a distributor.
type CreateDistributorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Country  string `json:"country" binding:"required"`
}

// CreateAmbassadorRequest is the payload for a distributor creating an ambassador.
type CreateAmbassadorRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Country  string `json:"country" binding:"required"`
	Phone    string `json:"phone"`
}

// UpdateAccountRequest carries optional field updates for an account.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Country  *string `json:"country"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// Authenticate checks the credentials against every account table and
// returns the matching principal. Ambassadors are by far the most
// numerous, so they are checked first.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	email := strings.ToLower(strings.TrimSpace(username))

	var ambassador Ambassador
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&ambassador).Error; err == nil {
		if auth.CheckPassword(password, ambassador.PasswordHash) == nil {
			return &Account{Email: ambassador.Email, Name: ambassador.Name, Role: RoleAmbassador, Country: ambassador.Country}, nil
		}
		return nil, ErrInvalidCredentials
	}

	var business Business
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&business).Error; err == nil {
		if auth.CheckPassword(password, business.PasswordHash) == nil {
			return &Account{Email: business.Email, Name: business.Name, Role: RoleBusiness, Country: business.Country}, nil
		}
		return nil, ErrInvalidCredentials
	}

	var distributor Distributor
	if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&distributor).Error; err == nil {
		if auth.CheckPassword(password, distributor.PasswordHash) == nil {
			return &Account{Email: distributor.Email, Name: distributor.Name, Role: RoleDistributor, Country: distributor.Country}, nil
		}
		return nil, ErrInvalidCredentials
	}

	return nil, ErrInvalidCredentials
}

// RegisterBusiness registers a new business account.
func (s *Service) RegisterBusiness(ctx context.Context, req *RegisterBusinessRequest) (*Business, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if taken, err := s.emailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, err
	}

	business := &Business{
		Name:          req.Name,
		Email:         email,
		PasswordHash:  hash,
		Country:       req.Country,
		CatalogDomain: req.CatalogDomain,
		MPAccessToken: req.MPAccessToken,
		MPPublicKey:   req.MPPublicKey,
	}
	if err := s.db.WithContext(ctx).Create(business).Error; err != nil {
		return nil, fmt.Errorf("failed to register business: %w", err)
	}
	return business, nil
}

// CreateDistributor creates a distributor under the calling business.
func (s *Service) CreateDistributor(ctx context.Context, businessEmail string, req *CreateDistributorRequest) (*Distributor, error) {
	business, err := s.GetBusinessByEmail(ctx, businessEmail)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if taken, err := s.emailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, err
	}

	distributor := &Distributor{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Country:      req.Country,
		BusinessID:   business.ID,
	}
	if err := s.db.WithContext(ctx).Create(distributor).Error; err != nil {
		return nil, fmt.Errorf("failed to create distributor: %w", err)
	}
	return distributor, nil
}

// ListDistributors lists the distributors of the calling business.
func (s *Service) ListDistributors(ctx context.Context, businessEmail string) ([]Distributor, error) {
	business, err := s.GetBusinessByEmail(ctx, businessEmail)
	if err != nil {
		return nil, err
	}

	var distributors []Distributor
	err = s.db.WithContext(ctx).Where("business_id = ?", business.ID).Order("id").Find(&distributors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distributors: %w", err)
	}
	return distributors, nil
}

// UpdateDistributor updates a distributor owned by the calling business.
func (s *Service) UpdateDistributor(ctx context.Context, businessEmail string, id uint, req *UpdateAccountRequest) (*Distributor, error) {
	business, err := s.GetBusinessByEmail(ctx, businessEmail)
	if err != nil {
		return nil, err
	}

	var distributor Distributor
	if err := s.db.WithContext(ctx).First(&distributor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDistributorNotFound
		}
		return nil, fmt.Errorf("failed to load distributor: %w", err)
	}
	if distributor.BusinessID != business.ID {
		return nil, ErrNotOwned
	}

	if req.Name != nil {
		distributor.Name = *req.Name
	}
	if req.Country != nil {
		distributor.Country = *req.Country
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, s.config.Security.BcryptCost)
		if err != nil {
			return nil, err
		}
		distributor.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(&distributor).Error; err != nil {
		return nil, fmt.Errorf("failed to update distributor: %w", err)
	}
	return &distributor, nil
}

// DeleteDistributor deletes a distributor owned by the calling business.
// Its ambassadors must be reassigned or removed first.
func (s *Service) DeleteDistributor(ctx context.Context, businessEmail string, id uint) error {
	business, err := s.GetBusinessByEmail(ctx, businessEmail)
	if err != nil {
		return err
	}

	var distributor Distributor
	if err := s.db.WithContext(ctx).First(&distributor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDistributorNotFound
		}
		return fmt.Errorf("failed to load distributor: %w", err)
	}
	if distributor.BusinessID != business.ID {
		return ErrNotOwned
	}

	var ambassadors int64
	if err := s.db.WithContext(ctx).Model(&Ambassador{}).Where("distributor_id = ?", id).Count(&ambassadors).Error; err != nil {
		return fmt.Errorf("failed to count ambassadors: %w", err)
	}
	if ambassadors > 0 {
		return fmt.Errorf("distributor still has %d ambassadors", ambassadors)
	}

	return s.db.WithContext(ctx).Delete(&distributor).Error
}

// CreateAmbassador creates an ambassador under the calling distributor.
func (s *Service) CreateAmbassador(ctx context.Context, distributorEmail string, req *CreateAmbassadorRequest) (*Ambassador, error) {
	distributor, err := s.GetDistributorByEmail(ctx, distributorEmail)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if taken, err := s.emailTaken(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, err
	}

	ambassador := &Ambassador{
		Name:          req.Name,
		Email:         email,
		PasswordHash:  hash,
		Country:       req.Country,
		Phone:         req.Phone,
		DistributorID: distributor.ID,
	}
	if err := s.db.WithContext(ctx).Create(ambassador).Error; err != nil {
		return nil, fmt.Errorf("failed to create ambassador: %w", err)
	}
	return ambassador, nil
}

// ListAmbassadors lists the ambassadors of the calling distributor.
func (s *Service) ListAmbassadors(ctx context.Context, distributorEmail string) ([]Ambassador, error) {
	distributor, err := s.GetDistributorByEmail(ctx, distributorEmail)
	if err != nil {
		return nil, err
	}

	var ambassadors []Ambassador
	err = s.db.WithContext(ctx).Where("distributor_id = ?", distributor.ID).Order("id").Find(&ambassadors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ambassadors: %w", err)
	}
	return ambassadors, nil
}

// UpdateAmbassador updates an ambassador owned by the calling distributor.
func (s *Service) UpdateAmbassador(ctx context.Context, distributorEmail string, id uint, req *UpdateAccountRequest) (*Ambassador, error) {
	distributor, err := s.GetDistributorByEmail(ctx, distributorEmail)
	if err != nil {
		return nil, err
	}

	var ambassador Ambassador
	if err := s.db.WithContext(ctx).First(&ambassador, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmbassadorNotFound
		}
		return nil, fmt.Errorf("failed to load ambassador: %w", err)
	}
	if ambassador.DistributorID != distributor.ID {
		return nil, ErrNotOwned
	}

	if req.Name != nil {
		ambassador.Name = *req.Name
	}
	if req.Country != nil && *req.Country != ambassador.Country {
		ambassador.Country = *req.Country
		s.InvalidateCountryCache(ctx, ambassador.Email)
	}
	if req.Phone != nil {
		ambassador.Phone = *req.Phone
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, s.config.Security.BcryptCost)
		if err != nil {
			return nil, err
		}
		ambassador.PasswordHash = hash
	}

	if err := s.db.WithContext(ctx).Save(&ambassador).Error; err != nil {
		return nil, fmt.Errorf("failed to update ambassador: %w", err)
	}
	return &ambassador, nil
}

// DeleteAmbassador deletes an ambassador owned by the calling distributor.
func (s *Service) DeleteAmbassador(ctx context.Context, distributorEmail string, id uint) error {
	distributor, err := s.GetDistributorByEmail(ctx, distributorEmail)
	if err != nil {
		return err
	}

	var ambassador Ambassador
	if err := s.db.WithContext(ctx).First(&ambassador, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAmbassadorNotFound
		}
		return fmt.Errorf("failed to load ambassador: %w", err)
	}
	if ambassador.DistributorID != distributor.ID {
		return ErrNotOwned
	}

	s.InvalidateCountryCache(ctx, ambassador.Email)
	return s.db.WithContext(ctx).Delete(&ambassador).Error
}

// GetBusinessByEmail loads a business account by email.
func (s *Service) GetBusinessByEmail(ctx context.Context, email string) (*Business, error) {
	var business Business
	err := s.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to load business: %w", err)
	}
	return &business, nil
}

// GetDistributorByEmail loads a distributor account by email.
func (s *Service) GetDistributorByEmail(ctx context.Context, email string) (*Distributor, error) {
	var distributor Distributor
	err := s.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&distributor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDistributorNotFound
		}
		return nil, fmt.Errorf("failed to load distributor: %w", err)
	}
	return &distributor, nil
}

// emailTaken checks whether an email is used by any account type.
// Login resolves accounts by email alone, so the namespace is shared.
func (s *Service) emailTaken(ctx context.Context, email string) (bool, error) {
	for _, model := range []interface{}{&Ambassador{}, &Distributor{}, &Business{}} {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
			return false, fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
