// internal/app/store/garden/service.go

// Package garden is the storage facade the HTTP features talk to. It owns
// the cross-collection operations (account teardown, sending chat as an
// identity) and the input hygiene (sanitizing free text, validating
// ratings); the per-collection packages own persistence. The facade is
// identical in both backend modes — mode only decided which adapters were
// wired in at startup.
package garden

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/backend"
	"github.com/dalemusser/gardenlog/internal/app/store/accounts"
	"github.com/dalemusser/gardenlog/internal/app/store/chat"
	"github.com/dalemusser/gardenlog/internal/app/store/harvests"
	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
	"github.com/dalemusser/gardenlog/internal/app/store/plans"
	"github.com/dalemusser/gardenlog/internal/app/store/plants"
	"github.com/dalemusser/gardenlog/internal/app/system/identity"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

var (
	// ErrNotLocalMode is returned by SignInDemo in connected mode, where
	// sign-in goes through Google instead.
	ErrNotLocalMode = errors.New("demo sign-in is only available in local mode")

	// ErrInvalidInput wraps validation failures so handlers can map them to
	// a 400 instead of a 500.
	ErrInvalidInput = errors.New("invalid input")

	errBadRating = fmt.Errorf("%w: rating must be 1..5", ErrInvalidInput)
	errBadWeight = fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
)

// Service bundles the per-collection stores behind the one storage contract
// the rest of the app consumes.
type Service struct {
	cfg      backend.Config
	plants   plants.Store
	harvests harvests.Store
	plans    plans.Store
	chat     chat.Store
	accounts accounts.Store
	broker   *identity.Broker

	// local is the raw medium in local mode (nil when connected); account
	// teardown resets it since demo mode has no invalidation channel.
	local *localkv.Store

	sanitize *bluemonday.Policy
	log      *zap.Logger
}

// NewService wires the facade. local may be nil in connected mode.
func NewService(
	cfg backend.Config,
	plantStore plants.Store,
	harvestStore harvests.Store,
	planStore plans.Store,
	chatStore chat.Store,
	accountStore accounts.Store,
	broker *identity.Broker,
	local *localkv.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		cfg:      cfg,
		plants:   plantStore,
		harvests: harvestStore,
		plans:    planStore,
		chat:     chatStore,
		accounts: accountStore,
		broker:   broker,
		local:    local,
		sanitize: bluemonday.StrictPolicy(),
		log:      logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Identity                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// SubscribeIdentity registers cb for auth-state changes and returns its
// cancel function. The current state (possibly nil) is delivered
// synchronously; the contract is the same in both modes because the broker
// is primed at startup.
func (s *Service) SubscribeIdentity(cb func(*models.Identity)) func() {
	return s.broker.Subscribe(cb)
}

// CurrentIdentity returns the last known auth state (nil if signed out).
func (s *Service) CurrentIdentity() *models.Identity {
	return s.broker.Current()
}

// CompleteSignIn records a successful sign-in: the profile is upserted, the
// login stamped, and subscribers notified. The OAuth callback calls this in
// connected mode; SignInDemo calls it locally.
func (s *Service) CompleteSignIn(ctx context.Context, ident models.Identity) error {
	if err := s.accounts.Upsert(ctx, ident); err != nil {
		return fmt.Errorf("upsert identity: %w", err)
	}
	if err := s.accounts.RecordLogin(ctx, ident.UID); err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	s.broker.Publish(&ident)
	return nil
}

// SignInDemo materializes the synthetic demo gardener. Local mode only.
func (s *Service) SignInDemo(ctx context.Context) (*models.Identity, error) {
	if s.cfg.Connected() {
		return nil, ErrNotLocalMode
	}
	demo := accounts.DemoIdentity()
	if err := s.CompleteSignIn(ctx, demo); err != nil {
		return nil, err
	}
	return &demo, nil
}

// SignOut publishes the signed-out state. Clearing the HTTP session is the
// auth layer's job.
func (s *Service) SignOut(ctx context.Context) error {
	s.broker.Publish(nil)
	return nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Plants                                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Service) ListPlants(ctx context.Context, userID string) ([]models.Plant, error) {
	return s.plants.List(ctx, userID)
}

func (s *Service) AddPlant(ctx context.Context, userID string, p models.Plant) (string, error) {
	p.Name = s.sanitize.Sanitize(p.Name)
	p.Notes = s.sanitize.Sanitize(p.Notes)
	if p.PlantedDate.IsZero() {
		p.PlantedDate = time.Now().UTC()
	}
	return s.plants.Add(ctx, userID, p)
}

func (s *Service) UpdatePlantStatus(ctx context.Context, userID, plantID string, isPlanted bool) error {
	return s.plants.UpdateStatus(ctx, userID, plantID, isPlanted)
}

func (s *Service) DeletePlant(ctx context.Context, userID, plantID string) error {
	return s.plants.Delete(ctx, userID, plantID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Harvests                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Service) ListHarvests(ctx context.Context, userID string) ([]models.HarvestLog, error) {
	return s.harvests.List(ctx, userID)
}

func (s *Service) AddHarvest(ctx context.Context, userID string, h models.HarvestLog) (string, error) {
	if h.Rating < 1 || h.Rating > 5 {
		return "", errBadRating
	}
	if h.WeightKg <= 0 {
		return "", errBadWeight
	}
	h.CropName = s.sanitize.Sanitize(h.CropName)
	if h.Date.IsZero() {
		h.Date = time.Now().UTC()
	}
	return s.harvests.Add(ctx, userID, h)
}

func (s *Service) DeleteHarvest(ctx context.Context, userID, harvestID string) error {
	return s.harvests.Delete(ctx, userID, harvestID)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Plans                                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Service) ListPlans(ctx context.Context, userID string) ([]models.SavedPlan, error) {
	return s.plans.List(ctx, userID)
}

func (s *Service) SavePlan(ctx context.Context, userID, name string, plan models.PlantingPlan) (string, error) {
	return s.plans.Save(ctx, userID, s.sanitize.Sanitize(name), plan)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Chat                                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (s *Service) ListMessages(ctx context.Context, channel string) ([]models.ChatMessage, error) {
	return s.chat.List(ctx, channel)
}

// SubscribeChat registers cb for the channel's messages. Same contract in
// both modes: the current history arrives synchronously, updates follow,
// cancel exactly once on teardown.
func (s *Service) SubscribeChat(ctx context.Context, channel string, cb func([]models.ChatMessage)) (chat.CancelFunc, error) {
	return s.chat.Subscribe(ctx, channel, cb)
}

// SendMessage appends text to the channel as sender.
func (s *Service) SendMessage(ctx context.Context, channel, text string, sender models.Identity) (string, error) {
	name := sender.DisplayName
	if name == "" {
		name = "Anonymous"
	}
	return s.chat.Send(ctx, channel, models.ChatMessage{
		Text:      s.sanitize.Sanitize(text),
		UserID:    sender.UID,
		UserName:  name,
		UserLevel: sender.GardenerLevel(),
		Timestamp: time.Now().UTC(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Account teardown                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// DeleteAccount removes everything the user owns, then revokes the identity
// itself. Every step is individually idempotent, so a cascade that failed
// partway (including on accounts.ErrReauthRequired, which is passed through
// untouched) can simply be re-invoked after the caller recovers; nothing is
// rolled back.
//
// In local mode the whole local store is reset afterward, standing in for a
// client restart since there is no reactive invalidation channel.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.plants.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete plants: %w", err)
	}
	if err := s.harvests.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete harvests: %w", err)
	}
	if err := s.plans.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("delete plans: %w", err)
	}

	if err := s.accounts.Revoke(ctx, userID); err != nil {
		// ErrReauthRequired must surface undisguised.
		return err
	}

	s.broker.Publish(nil)
	s.log.Info("account deleted", zap.String("user_id", userID))

	if !s.cfg.Connected() && s.local != nil {
		if err := s.local.Reset(); err != nil {
			return fmt.Errorf("reset local store: %w", err)
		}
	}
	return nil
}
