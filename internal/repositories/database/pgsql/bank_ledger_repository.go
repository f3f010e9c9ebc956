package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propledger/property_ledger_app/internal/apperrors"
	"github.com/propledger/property_ledger_app/internal/core/domain"
	portsrepo "github.com/propledger/property_ledger_app/internal/core/ports/repositories"
	"github.com/propledger/property_ledger_app/internal/models"
	"github.com/propledger/property_ledger_app/internal/utils/mapping"
)

const bankLedgerColumns = `bank_ledger_id, entity_id, account_name, bank_name, bank_account_type, account_number, routing_number, current_balance, chart_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxBankLedgerRepository struct {
	BaseRepository
}

// newPgxBankLedgerRepository creates a new repository for bank ledger data.
func newPgxBankLedgerRepository(pool *pgxpool.Pool) portsrepo.BankLedgerRepositoryFacade {
	return &PgxBankLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankLedgerRepositoryFacade = (*PgxBankLedgerRepository)(nil)

func scanBankLedger(row pgx.Row) (models.BankLedger, error) {
	var m models.BankLedger
	var chartAccountID sql.NullString
	err := row.Scan(
		&m.BankLedgerID,
		&m.EntityID,
		&m.AccountName,
		&m.BankName,
		&m.BankAccountType,
		&m.AccountNumber,
		&m.RoutingNumber,
		&m.CurrentBalance,
		&chartAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.BankLedger{}, err
	}
	if chartAccountID.Valid {
		m.ChartAccountID = chartAccountID.String
	}
	return m, nil
}

// SaveBankLedger inserts a new bank ledger.
func (r *PgxBankLedgerRepository) SaveBankLedger(ctx context.Context, ledger domain.BankLedger) error {
	m := mapping.ToModelBankLedger(ledger)
	query := `
		INSERT INTO bank_ledgers (bank_ledger_id, entity_id, account_name, bank_name, bank_account_type, account_number, routing_number, current_balance, chart_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankLedgerID,
		m.EntityID,
		m.AccountName,
		m.BankName,
		m.BankAccountType,
		m.AccountNumber,
		m.RoutingNumber,
		m.CurrentBalance,
		nullableString(m.ChartAccountID),
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bank ledger %s: %w", m.BankLedgerID, err)
	}
	return nil
}

// FindBankLedgerByID retrieves a bank ledger with its linked chart account
// populated when one is assigned.
func (r *PgxBankLedgerRepository) FindBankLedgerByID(ctx context.Context, bankLedgerID string) (*domain.BankLedger, error) {
	query := `
		SELECT b.bank_ledger_id, b.entity_id, b.account_name, b.bank_name, b.bank_account_type, b.account_number, b.routing_number, b.current_balance, b.chart_account_id, b.is_active,
		       b.created_at, b.created_by, b.last_updated_at, b.last_updated_by,
		       c.chart_account_id, c.entity_id, c.account_code, c.account_name, c.account_type, c.parent_account_id, c.description, c.is_active,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM bank_ledgers b
		LEFT JOIN chart_accounts c ON b.chart_account_id = c.chart_account_id
		WHERE b.bank_ledger_id = $1;
	`
	var m models.BankLedger
	var linkID sql.NullString

	var caID, caEntityID, caCode, caName, caType, caParentID, caDescription, caCreatedBy, caUpdatedBy sql.NullString
	var caIsActive sql.NullBool
	var caCreatedAt, caUpdatedAt sql.NullTime

	err := r.Pool.QueryRow(ctx, query, bankLedgerID).Scan(
		&m.BankLedgerID,
		&m.EntityID,
		&m.AccountName,
		&m.BankName,
		&m.BankAccountType,
		&m.AccountNumber,
		&m.RoutingNumber,
		&m.CurrentBalance,
		&linkID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&caID,
		&caEntityID,
		&caCode,
		&caName,
		&caType,
		&caParentID,
		&caDescription,
		&caIsActive,
		&caCreatedAt,
		&caCreatedBy,
		&caUpdatedAt,
		&caUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank ledger by ID %s: %w", bankLedgerID, err)
	}

	if linkID.Valid {
		m.ChartAccountID = linkID.String
	}
	ledger := mapping.ToDomainBankLedger(m)

	if caID.Valid {
		ledger.ChartAccount = &domain.ChartAccount{
			ChartAccountID:  caID.String,
			EntityID:        caEntityID.String,
			AccountCode:     caCode.String,
			AccountName:     caName.String,
			AccountType:     domain.AccountType(caType.String),
			ParentAccountID: caParentID.String,
			Description:     caDescription.String,
			IsActive:        caIsActive.Bool,
			AuditFields: domain.AuditFields{
				CreatedAt:     caCreatedAt.Time,
				CreatedBy:     caCreatedBy.String,
				LastUpdatedAt: caUpdatedAt.Time,
				LastUpdatedBy: caUpdatedBy.String,
			},
		}
	}
	return &ledger, nil
}

// ListBankLedgersByEntity returns an entity's bank ledgers ordered by account name.
func (r *PgxBankLedgerRepository) ListBankLedgersByEntity(ctx context.Context, entityID string) ([]domain.BankLedger, error) {
	query := `SELECT ` + bankLedgerColumns + ` FROM bank_ledgers WHERE entity_id = $1 ORDER BY account_name;`
	rows, err := r.Pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank ledgers for entity %s: %w", entityID, err)
	}
	defer rows.Close()

	ledgers := []domain.BankLedger{}
	for rows.Next() {
		m, err := scanBankLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank ledger row: %w", err)
		}
		ledgers = append(ledgers, mapping.ToDomainBankLedger(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank ledger rows: %w", err)
	}
	return ledgers, nil
}

// UpdateBankLedger persists chart-account link and active-flag changes. The
// cached balance is deliberately not touched here.
func (r *PgxBankLedgerRepository) UpdateBankLedger(ctx context.Context, ledger domain.BankLedger) error {
	m := mapping.ToModelBankLedger(ledger)
	query := `
		UPDATE bank_ledgers
		SET account_name = $2,
		    bank_name = $3,
		    chart_account_id = $4,
		    is_active = $5,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE bank_ledger_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.BankLedgerID,
		m.AccountName,
		m.BankName,
		nullableString(m.ChartAccountID),
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank ledger %s: %w", m.BankLedgerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("bank ledger %s: %w", m.BankLedgerID, apperrors.ErrNotFound)
	}
	return nil
}

// FindBankLedgersByIDsForUpdate loads and row-locks bank ledgers inside the
// given transaction.
func (r *PgxBankLedgerRepository) FindBankLedgersByIDsForUpdate(ctx context.Context, tx pgx.Tx, bankLedgerIDs []string) (map[string]domain.BankLedger, error) {
	if len(bankLedgerIDs) == 0 {
		return map[string]domain.BankLedger{}, nil
	}

	query := `SELECT ` + bankLedgerColumns + ` FROM bank_ledgers WHERE bank_ledger_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, bankLedgerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock bank ledgers: %w", err)
	}
	defer rows.Close()

	ledgers := make(map[string]domain.BankLedger)
	for rows.Next() {
		m, err := scanBankLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked bank ledger row: %w", err)
		}
		ledgers[m.BankLedgerID] = mapping.ToDomainBankLedger(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked bank ledger rows: %w", err)
	}

	for _, id := range bankLedgerIDs {
		if _, found := ledgers[id]; !found {
			return nil, fmt.Errorf("bank ledger %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return ledgers, nil
}

// ApplyBalanceDeltasInTx increments each ledger's cached balance inside the
// given transaction. Rows must already be locked.
func (r *PgxBankLedgerRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE bank_ledgers
		SET current_balance = current_balance + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE bank_ledger_id = $1;
	`
	batch := &pgx.Batch{}
	for bankLedgerID, delta := range deltas {
		batch.Queue(query, bankLedgerID, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to apply bank balance deltas: %w", err)
	}
	return nil
}
