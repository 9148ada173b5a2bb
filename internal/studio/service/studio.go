package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/internal/studio/store"
	"github.com/trackroomhq/trackroom/pkg/idx"
	"github.com/trackroomhq/trackroom/pkg/slogx"
)

type StudioService struct {
	Store store.Store
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify flattens a studio name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStripRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateStudio creates a studio and its owner membership in one transaction.
// The owner membership never goes through the invite path.
func (s *StudioService) CreateStudio(ctx context.Context, ownerID, name string) (domain.Studio, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Studio{}, E(KindValidation, "studio name must not be empty")
	}
	slug := Slugify(name)
	if slug == "" {
		return domain.Studio{}, E(KindValidation, "studio name must contain letters or digits")
	}

	studio := domain.Studio{
		ID:      idx.New().String(),
		Name:    name,
		Slug:    slug,
		OwnerID: ownerID,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Studios().CreateStudio(ctx, studio); err != nil {
			// Slug taken; retry once with an id-derived suffix.
			if errors.Is(err, store.ErrAlreadyExists) {
				studio.Slug = slug + "-" + strings.ToLower(studio.ID[len(studio.ID)-6:])
				err = tx.Studios().CreateStudio(ctx, studio)
			}
			if err != nil {
				return err
			}
		}

		return tx.Memberships().UpsertMembership(ctx, domain.Membership{
			ID:         idx.New().String(),
			StudioID:   studio.ID,
			IdentityID: ownerID,
			Role:       domain.RoleOwner,
			Status:     domain.MemberStatusActive,
			JoinedAt:   time.Now().UTC(),
		})
	})
	if err != nil {
		log.Error("failed to create studio",
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)
		return domain.Studio{}, dbError(err)
	}

	log.Info("studio created",
		slog.String("studio_id", studio.ID),
		slog.String("slug", studio.Slug),
	)
	return studio, nil
}

// GetStudio returns a studio the identity is an active member of.
func (s *StudioService) GetStudio(ctx context.Context, identityID, studioID string) (domain.Studio, error) {
	if _, err := requireMember(ctx, s.Store, studioID, identityID, domain.RoleMember); err != nil {
		return domain.Studio{}, err
	}

	studio, err := s.Store.Studios().GetStudioByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Studio{}, E(KindNotAMember, "studio not found")
		}
		return domain.Studio{}, dbError(err)
	}
	return studio, nil
}

// RenameStudio changes a studio's name. The slug stays fixed so shared links
// keep working.
func (s *StudioService) RenameStudio(ctx context.Context, actorID, studioID, name string) error {
	if _, err := requireMember(ctx, s.Store, studioID, actorID, domain.RoleAdmin); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return E(KindValidation, "studio name must not be empty")
	}

	if err := s.Store.Studios().UpdateStudioName(ctx, studioID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return E(KindNotAMember, "studio not found")
		}
		return dbError(err)
	}
	return nil
}
