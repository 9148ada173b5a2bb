package http

import (
	"github.com/trackroomhq/trackroom/internal/studio/domain"
	"github.com/trackroomhq/trackroom/pkg/studiosdk"
)

func toStudio(s domain.Studio) studiosdk.Studio {
	return studiosdk.Studio{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
	}
}

func toMembership(m domain.Membership) studiosdk.Membership {
	out := studiosdk.Membership{
		ID:         m.ID,
		StudioID:   m.StudioID,
		IdentityID: m.IdentityID,
		Role:       string(m.Role),
		Status:     string(m.Status),
		JoinedAt:   m.JoinedAt,
	}
	if m.Studio.ID != "" {
		studio := toStudio(m.Studio)
		out.Studio = &studio
	}
	return out
}

func toMemberships(ms []domain.Membership) []studiosdk.Membership {
	out := make([]studiosdk.Membership, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMembership(m))
	}
	return out
}

func toInvitation(i domain.Invitation) studiosdk.Invitation {
	out := studiosdk.Invitation{
		ID:         i.ID,
		StudioID:   i.StudioID,
		Email:      i.Email,
		Role:       string(i.Role),
		Status:     string(i.Status),
		ExpiresAt:  i.ExpiresAt,
		AcceptedAt: i.AcceptedAt,
	}
	if i.Studio.ID != "" {
		studio := toStudio(i.Studio)
		out.Studio = &studio
	}
	return out
}

func toInvitations(is []domain.Invitation) []studiosdk.Invitation {
	out := make([]studiosdk.Invitation, 0, len(is))
	for _, i := range is {
		out = append(out, toInvitation(i))
	}
	return out
}

func toInviteLink(l domain.InviteLink) studiosdk.InviteLink {
	return studiosdk.InviteLink{
		StudioID:    l.StudioID,
		DefaultRole: string(l.DefaultRole),
		Enabled:     l.Enabled,
	}
}

func toRoom(r domain.Room) studiosdk.Room {
	return studiosdk.Room{
		ID:              r.ID,
		StudioID:        r.StudioID,
		Name:            r.Name,
		HourlyRateCents: r.HourlyRateCents,
	}
}

func toSession(s domain.Session) studiosdk.StudioSession {
	return studiosdk.StudioSession{
		ID:       s.ID,
		StudioID: s.StudioID,
		RoomID:   s.RoomID,
		Title:    s.Title,
		BookedBy: s.BookedBy,
		Status:   string(s.Status),
		StartsAt: s.StartsAt,
		EndsAt:   s.EndsAt,
	}
}

func toGearItem(g domain.GearItem) studiosdk.GearItem {
	return studiosdk.GearItem{
		ID:           g.ID,
		StudioID:     g.StudioID,
		Name:         g.Name,
		Category:     g.Category,
		SerialNumber: g.SerialNumber,
		Status:       string(g.Status),
		Notes:        g.Notes,
	}
}

func toInvoice(inv domain.Invoice) studiosdk.Invoice {
	subtotal, tax, total := inv.Totals()
	lines := make([]studiosdk.InvoiceLine, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, studiosdk.InvoiceLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitCents:   l.UnitCents,
		})
	}
	return studiosdk.Invoice{
		ID:            inv.ID,
		StudioID:      inv.StudioID,
		Number:        inv.Number,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		Status:        string(inv.Status),
		TaxRateBps:    inv.TaxRateBps,
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    total,
		Lines:         lines,
		CreatedAt:     inv.CreatedAt,
	}
}

func toIdentity(i domain.Identity) studiosdk.Identity {
	return studiosdk.Identity{
		ID:          i.ID,
		Email:       i.Email,
		DisplayName: i.DisplayName,
		MFAActive:   i.MFAActive(),
	}
}
