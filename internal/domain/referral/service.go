// internal/domain/referral/service.go
package referral

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/infrastructure/database/redis"
	"gorm.io/gorm"
)

var (
	ErrAmbassadorNotFound   = errors.New("ambassador not found")
	ErrDistributorNotFound  = errors.New("distributor not found")
	ErrBusinessNotFound     = errors.New("business not found")
	ErrNoPaymentCredentials = errors.New("business has no payment credentials")
)

const countryCachePrefix = "referral:country:"

// Service resolves referral codes and manages the account hierarchy.
type Service struct {
	db     *gorm.DB
	redis  *redis.Client
	config *config.Config
	log    *logrus.Logger
}

// NewService creates a new referral service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:     db,
		redis:  redisClient,
		config: cfg,
		log:    log,
	}
}

// NormalizeRef normalizes a referral code: URL-unescape, trim, lowercase.
// Refs are ambassador emails and emails are stored lowercased. Percent
// escapes are decoded but "+" stays verbatim; it is a valid email
// character, not a form-encoded space.
func NormalizeRef(ref string) string {
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	return strings.ToLower(strings.TrimSpace(ref))
}

// ResolveAmbassador looks up the ambassador behind a referral code.
func (s *Service) ResolveAmbassador(ctx context.Context, ref string) (*Ambassador, error) {
	normalized := NormalizeRef(ref)
	if normalized == "" {
		return nil, ErrAmbassadorNotFound
	}

	var ambassador Ambassador
	err := s.db.WithContext(ctx).Where("LOWER(email) = ?", normalized).First(&ambassador).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAmbassadorNotFound
		}
		return nil, fmt.Errorf("failed to resolve ambassador: %w", err)
	}
	return &ambassador, nil
}

// ResolveCountry resolves the country behind a referral code. The lookup
// is bounded by the configured timeout; on any failure or miss it logs
// and returns an empty country so callers fall back to MXN pricing. It
// never retries. Hits are cached in Redis.
func (s *Service) ResolveCountry(ctx context.Context, ref string) string {
	normalized := NormalizeRef(ref)
	if normalized == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Referral.LookupTimeout)
	defer cancel()

	cacheKey := countryCachePrefix + normalized
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		return cached
	}

	ambassador, err := s.ResolveAmbassador(ctx, normalized)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"ref":   normalized,
			"error": err.Error(),
		}).Warn("referral country lookup failed, falling back to default pricing")
		return ""
	}

	if err := s.redis.Set(ctx, cacheKey, ambassador.Country, s.config.Referral.CacheTTL).Err(); err != nil {
		s.log.WithError(err).Warn("failed to cache referral country")
	}

	return ambassador.Country
}

// InvalidateCountryCache drops the cached country for a referral code.
// Called when an ambassador's country changes.
func (s *Service) InvalidateCountryCache(ctx context.Context, ref string) {
	normalized := NormalizeRef(ref)
	if normalized == "" {
		return
	}
	if err := s.redis.Del(ctx, countryCachePrefix+normalized).Err(); err != nil {
		s.log.WithError(err).Warn("failed to invalidate referral country cache")
	}
}

// BusinessForAmbassador walks up the hierarchy to the business that
// owns an ambassador's distributor.
func (s *Service) BusinessForAmbassador(ctx context.Context, ambassador *Ambassador) (*Business, error) {
	var distributor Distributor
	err := s.db.WithContext(ctx).First(&distributor, ambassador.DistributorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDistributorNotFound
		}
		return nil, fmt.Errorf("failed to load distributor: %w", err)
	}

	var business Business
	err = s.db.WithContext(ctx).First(&business, distributor.BusinessID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to load business: %w", err)
	}

	return &business, nil
}

// CredentialedBusinesses lists businesses holding payment credentials,
// oldest first.
func (s *Service) CredentialedBusinesses(ctx context.Context) ([]Business, error) {
	var businesses []Business
	err := s.db.WithContext(ctx).
		Where("mp_access_token <> ''").
		Order("id").
		Find(&businesses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

// PayingBusinessForRef resolves the business collecting payments for a
// referral code. The business must hold gateway credentials.
func (s *Service) PayingBusinessForRef(ctx context.Context, ref string) (*Business, error) {
	ambassador, err := s.ResolveAmbassador(ctx, ref)
	if err != nil {
		return nil, err
	}
	business, err := s.BusinessForAmbassador(ctx, ambassador)
	if err != nil {
		return nil, err
	}
	if !business.HasCredentials() {
		return nil, ErrNoPaymentCredentials
	}
	return business, nil
}

// NetworkRefs returns the referral codes visible to an account: an
// ambassador sees itself, a distributor sees its ambassadors, and a
// business sees every ambassador under its distributors.
func (s *Service) NetworkRefs(ctx context.Context, role, email string) ([]string, error) {
	email = strings.ToLower(email)

	switch role {
	case RoleAmbassador:
		return []string{email}, nil

	case RoleDistributor:
		var distributor Distributor
		if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&distributor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDistributorNotFound
			}
			return nil, fmt.Errorf("failed to load distributor: %w", err)
		}
		return s.ambassadorEmails(ctx, "distributor_id = ?", distributor.ID)

	case RoleBusiness:
		var business Business
		if err := s.db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&business).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBusinessNotFound
			}
			return nil, fmt.Errorf("failed to load business: %w", err)
		}
		return s.ambassadorEmails(ctx,
			"distributor_id IN (SELECT id FROM distributors WHERE business_id = ?)", business.ID)

	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

func (s *Service) ambassadorEmails(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	var emails []string
	err := s.db.WithContext(ctx).Model(&Ambassador{}).
		Where(query, args...).
		Pluck("LOWER(email)", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list network ambassadors: %w", err)
	}
	return emails, nil
}
