package sqlite

import (
	"context"

	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

type invoicesRepo struct {
	db dbtx
}

const invoiceColumns = `id, studio_id, number, client_name, client_email, status, tax_rate_bps, created_by, created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(&inv.ID, &inv.StudioID, &inv.Number, &inv.ClientName,
		&inv.ClientEmail, &inv.Status, &inv.TaxRateBps, &inv.CreatedBy,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (r *invoicesRepo) CreateInvoice(ctx context.Context, inv domain.Invoice) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices (id, studio_id, number, client_name, client_email, status, tax_rate_bps, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.StudioID, inv.Number, inv.ClientName, inv.ClientEmail,
		inv.Status, inv.TaxRateBps, inv.CreatedBy)
	if err != nil {
		return mapConstraint(err)
	}

	for _, l := range inv.Lines {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO invoice_lines (id, invoice_id, position, description, quantity, unit_cents)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			l.ID, inv.ID, l.Position, l.Description, l.Quantity, l.UnitCents)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *invoicesRepo) GetInvoiceByID(ctx context.Context, id string) (domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return domain.Invoice{}, mapNotFound(err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, invoice_id, position, description, quantity, unit_cents
		 FROM invoice_lines
		 WHERE invoice_id = ?
		 ORDER BY position ASC`,
		id)
	if err != nil {
		return domain.Invoice{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.InvoiceLine
		err := rows.Scan(&l.ID, &l.InvoiceID, &l.Position, &l.Description,
			&l.Quantity, &l.UnitCents)
		if err != nil {
			return domain.Invoice{}, err
		}
		inv.Lines = append(inv.Lines, l)
	}
	return inv, rows.Err()
}

func (r *invoicesRepo) ListStudioInvoices(ctx context.Context, studioID string) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invoiceColumns+`
		 FROM invoices
		 WHERE studio_id = ?
		 ORDER BY created_at DESC`,
		studioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invoicesRepo) UpdateInvoiceStatus(ctx context.Context, id string, next, expected domain.InvoiceStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		next, id, expected)
	return affectedOrStale(res, err)
}
