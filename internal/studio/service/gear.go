package service

import (
	"context"
	"errors"
	"strings"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/idx"
)

// GearService manages a studio's equipment inventory.
type GearService struct {
	Store store.Store
}

func (s *GearService) AddItem(ctx context.Context, actorID, studioID, name, category, serialNumber, notes string) (domain.GearItem, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return domain.GearItem{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.GearItem{}, E(KindValidation, "gear name must not be empty")
	}

	item := domain.GearItem{
		ID:           idx.New().String(),
		StudioID:     studioID,
		Name:         name,
		Category:     strings.TrimSpace(category),
		SerialNumber: strings.TrimSpace(serialNumber),
		Status:       domain.GearAvailable,
		Notes:        notes,
	}
	if err := s.Store.Gear().CreateGearItem(ctx, item); err != nil {
		return domain.GearItem{}, dbError(err)
	}
	return item, nil
}

func (s *GearService) ListItems(ctx context.Context, actorID, studioID string) ([]domain.GearItem, error) {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return nil, err
	}

	items, err := s.Store.Gear().ListStudioGear(ctx, studioID)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

func (s *GearService) SetItemStatus(ctx context.Context, actorID, studioID, itemID string, status domain.GearStatus) error {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleMember); err != nil {
		return err
	}
	if _, ok := domain.ParseGearStatus(string(status)); !ok {
		return E(KindValidation, "unknown gear status")
	}

	item, err := s.Store.Gear().GetGearItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "gear item not found")
		}
		return dbError(err)
	}
	if item.StudioID != studioID {
		return E(KindValidation, "gear item not found")
	}

	if err := s.Store.Gear().UpdateGearItemStatus(ctx, itemID, status); err != nil {
		return dbError(err)
	}
	return nil
}

func (s *GearService) RemoveItem(ctx context.Context, actorID, studioID, itemID string) error {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return err
	}

	item, err := s.Store.Gear().GetGearItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindValidation, "gear item not found")
		}
		return dbError(err)
	}
	if item.StudioID != studioID {
		return E(KindValidation, "gear item not found")
	}

	if err := s.Store.Gear().DeleteGearItem(ctx, itemID); err != nil {
		return dbError(err)
	}
	return nil
}
