package services

import (
	"context"
	"time"

	"motora/internal/models"
	"motora/internal/pricing"
	"motora/internal/repositories/interfaces"
	"motora/internal/validators"
	"motora/pkg/logger"
	"motora/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// repoConfigProvider adapts the repositories to the pricing engine's
// provider interface, so the engine never touches storage directly.
type repoConfigProvider struct {
	pricingRepo      interfaces.PricingRepository
	availabilityRepo interfaces.AvailabilityRepository
}

func (p *repoConfigProvider) PricingConfig(ctx context.Context, serviceType models.ServiceType, region string) (*models.PricingConfiguration, error) {
	return p.pricingRepo.GetActive(ctx, serviceType, region)
}

func (p *repoConfigProvider) AvailabilityRules(ctx context.Context, serviceType models.ServiceType, region string) ([]*models.AvailabilityRule, error) {
	return p.availabilityRepo.GetActive(ctx, serviceType, region)
}

// PricingService serves passenger quotes and the admin pricing and
// availability CRUD. Every admin write invalidates the cached
// configuration (inside the repository) and pushes a recompute signal
// to connected clients.
type PricingService struct {
	engine           *pricing.Engine
	pricingRepo      interfaces.PricingRepository
	availabilityRepo interfaces.AvailabilityRepository
	cache            CacheService
	hub              *websocket.Hub
	logger           *logger.Logger
}

func NewPricingService(
	pricingRepo interfaces.PricingRepository,
	availabilityRepo interfaces.AvailabilityRepository,
	cacheService CacheService,
	hub *websocket.Hub,
	log *logger.Logger,
) *PricingService {
	provider := &repoConfigProvider{
		pricingRepo:      pricingRepo,
		availabilityRepo: availabilityRepo,
	}

	return &PricingService{
		engine:           pricing.NewEngine(provider, log),
		pricingRepo:      pricingRepo,
		availabilityRepo: availabilityRepo,
		cache:            cacheService,
		hub:              hub,
		logger:           log,
	}
}

// GetQuote computes a fresh estimate for the request time. Quotes are
// snapshots: a pricing change after this call is signalled over the
// recompute channel and the client re-quotes.
func (s *PricingService) GetQuote(ctx context.Context, serviceType models.ServiceType, region string, distanceKm float64, at time.Time) (*models.RideQuote, error) {
	return s.engine.Quote(ctx, serviceType, region, distanceKm, at)
}

// QuoteFromOffer prices a negotiated ride: the passenger names the
// fare, in integer cents, and the engine only checks availability. The
// offer is converted to base currency units before any money math.
func (s *PricingService) QuoteFromOffer(ctx context.Context, serviceType models.ServiceType, region string, offerCents int64, at time.Time) (*models.RideQuote, error) {
	return s.engine.QuoteOffer(ctx, serviceType, region, offerCents, at)
}

// AvailableServiceTypes returns the service types a passenger can book
// in the region at the given time.
func (s *PricingService) AvailableServiceTypes(ctx context.Context, region string, at time.Time) ([]models.ServiceType, error) {
	var available []models.ServiceType
	for _, serviceType := range models.AllServiceTypes {
		rules, err := s.availabilityRepo.GetActive(ctx, serviceType, region)
		if err != nil {
			return nil, err
		}
		if len(rules) == 0 {
			available = append(available, serviceType)
			continue
		}
		for _, rule := range rules {
			if rule.Covers(at) {
				available = append(available, serviceType)
				break
			}
		}
	}

	return available, nil
}

func (s *PricingService) CreatePricingConfig(ctx context.Context, config *models.PricingConfiguration) error {
	if errs := validators.ValidatePricingConfiguration(config); len(errs) > 0 {
		return validators.NewValidationError(errs)
	}

	if err := s.pricingRepo.Create(ctx, config); err != nil {
		return err
	}

	if !config.HasActiveRule() {
		s.logger.WithFields(map[string]interface{}{
			"service_type": string(config.ServiceType),
			"region":       config.Region,
		}).Warn("Pricing configuration created without an active rule, quotes will use the fallback formula")
	}

	s.notifyPricingChanged(ctx, config.ServiceType, config.Region)
	return nil
}

func (s *PricingService) UpdatePricingConfig(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.PricingConfiguration, error) {
	current, err := s.pricingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the merged result before touching storage, so a
	// rejected update never leaves an invalid configuration behind.
	merged := *current
	applyPricingUpdates(&merged, updates)
	if errs := validators.ValidatePricingConfiguration(&merged); len(errs) > 0 {
		return nil, validators.NewValidationError(errs)
	}

	if err := s.pricingRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	updated, err := s.pricingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyPricingChanged(ctx, updated.ServiceType, updated.Region)
	return updated, nil
}

func (s *PricingService) DeletePricingConfig(ctx context.Context, id primitive.ObjectID) error {
	config, err := s.pricingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.pricingRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifyPricingChanged(ctx, config.ServiceType, config.Region)
	return nil
}

func (s *PricingService) GetPricingConfig(ctx context.Context, id primitive.ObjectID) (*models.PricingConfiguration, error) {
	return s.pricingRepo.GetByID(ctx, id)
}

func (s *PricingService) ListPricingConfigs(ctx context.Context, region string) ([]*models.PricingConfiguration, error) {
	return s.pricingRepo.List(ctx, region)
}

func (s *PricingService) CreateAvailabilityRule(ctx context.Context, rule *models.AvailabilityRule) error {
	if errs := validators.ValidateAvailabilityRule(rule); len(errs) > 0 {
		return validators.NewValidationError(errs)
	}

	if err := s.availabilityRepo.Create(ctx, rule); err != nil {
		return err
	}

	s.notifyPricingChanged(ctx, rule.ServiceType, rule.Region)
	return nil
}

func (s *PricingService) UpdateAvailabilityRule(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.AvailabilityRule, error) {
	current, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	applyAvailabilityUpdates(&merged, updates)
	if errs := validators.ValidateAvailabilityRule(&merged); len(errs) > 0 {
		return nil, validators.NewValidationError(errs)
	}

	if err := s.availabilityRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	updated, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyPricingChanged(ctx, updated.ServiceType, updated.Region)
	return updated, nil
}

func (s *PricingService) DeleteAvailabilityRule(ctx context.Context, id primitive.ObjectID) error {
	rule, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.notifyPricingChanged(ctx, rule.ServiceType, rule.Region)
	return nil
}

func (s *PricingService) ListAvailabilityRules(ctx context.Context, region string) ([]*models.AvailabilityRule, error) {
	return s.availabilityRepo.List(ctx, region)
}

func (s *PricingService) notifyPricingChanged(ctx context.Context, serviceType models.ServiceType, region string) {
	if err := s.cache.Publish(ctx, RecomputeChannel, map[string]string{
		"event":        websocket.EventPricingChanged,
		"service_type": string(serviceType),
		"region":       region,
	}); err != nil {
		s.logger.WithError(err).Warn("Failed to publish pricing change signal")
	}

	if s.hub != nil {
		s.hub.BroadcastPricingChanged(string(serviceType), region)
	}
}

// applyPricingUpdates projects a handler-built update document onto a
// configuration copy so the merged state can be validated before the
// write. Keys mirror the bson field names the handlers emit.
func applyPricingUpdates(config *models.PricingConfiguration, updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "per_kilometer_rate":
			if v, ok := value.(float64); ok {
				config.PerKilometerRate = v
			}
		case "per_kilometer_active":
			if v, ok := value.(bool); ok {
				config.PerKilometerActive = v
			}
		case "fixed_price":
			if v, ok := value.(float64); ok {
				price := v
				config.FixedPrice = &price
			}
		case "fixed_price_active":
			if v, ok := value.(bool); ok {
				config.FixedPriceActive = v
			}
		case "service_fee_type":
			if v, ok := value.(string); ok {
				config.ServiceFeeType = models.ServiceFeeType(v)
			}
		case "service_fee_value":
			if v, ok := value.(float64); ok {
				config.ServiceFeeValue = v
			}
		case "is_active":
			if v, ok := value.(bool); ok {
				config.IsActive = v
			}
		}
	}
}

func applyAvailabilityUpdates(rule *models.AvailabilityRule, updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "weekdays":
			if v, ok := value.([]int); ok {
				rule.Weekdays = v
			}
		case "time_start":
			if v, ok := value.(string); ok {
				rule.TimeStart = v
			}
		case "time_end":
			if v, ok := value.(string); ok {
				rule.TimeEnd = v
			}
		case "surge_multiplier":
			if v, ok := value.(float64); ok {
				rule.SurgeMultiplier = v
			}
		case "is_active":
			if v, ok := value.(bool); ok {
				rule.IsActive = v
			}
		case "notes":
			if v, ok := value.(string); ok {
				rule.Notes = v
			}
		}
	}
}
