package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx). La tabla transactions es append-only: este adaptador
// no expone UPDATE ni DELETE y no existe otro camino de escritura.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// selectWithNames columnas del asiento más los nombres proyectados. LEFT JOIN:
// un asiento nunca pierde visibilidad porque su producto esté inactivo.
const selectWithNames = `
	SELECT t.id, t.user_id, t.product_id, t.quantity_change, t.type,
	       t.unit_price, t.total_value, COALESCE(t.notes, ''), t.created_at,
	       COALESCE(p.name, ''), COALESCE(u.name, '')
	FROM transactions t
	LEFT JOIN products p ON p.id = t.product_id
	LEFT JOIN users u ON u.id = t.user_id`

// Create persiste un asiento nuevo. ID (BIGSERIAL) y created_at los asigna la
// base; se devuelven al llamador vía RETURNING.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, product_id, quantity_change, type, unit_price, total_value, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), now())
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		t.UserID, t.ProductID, t.QuantityChange, t.Type,
		t.UnitPrice, t.TotalValue, t.Notes,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento con nombres proyectados. Inexistente: (nil, nil).
func (r *TransactionRepo) GetByID(ctx context.Context, id int64) (*repository.TransactionWithNames, error) {
	row := r.q.QueryRow(ctx, selectWithNames+` WHERE t.id = $1`, id)
	t, err := scanWithNames(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// List retorna la página pedida (created_at DESC, id DESC) y el total sin
// paginar. El conteo y la página usan el mismo WHERE para que el total sea
// consistente en todas las páginas.
func (r *TransactionRepo) List(ctx context.Context, filter repository.TransactionFilter, limit, offset int) ([]*repository.TransactionWithNames, int64, error) {
	where, args := buildWhere(filter)

	var total int64
	countQuery := `SELECT count(*) FROM transactions t` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY t.created_at DESC, t.id DESC LIMIT $%d OFFSET $%d",
		selectWithNames, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*repository.TransactionWithNames
	for rows.Next() {
		t, err := scanWithNames(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// Summary agregados globales: conteo, suma de total_value (incluye tipos
// neutros) y los 5 asientos más recientes.
func (r *TransactionRepo) Summary(ctx context.Context) (*repository.TransactionSummary, error) {
	var sum repository.TransactionSummary
	err := r.q.QueryRow(ctx,
		`SELECT count(*), COALESCE(SUM(total_value), 0) FROM transactions`,
	).Scan(&sum.TotalTransactions, &sum.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("summary aggregates: %w", err)
	}

	rows, err := r.q.Query(ctx, selectWithNames+` ORDER BY t.created_at DESC, t.id DESC LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("summary recent: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		t, err := scanWithNames(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recent transaction: %w", err)
		}
		sum.Recent = append(sum.Recent, t)
	}
	return &sum, rows.Err()
}

// LastDateByProduct fecha del asiento más reciente del producto (consulta
// indexada con LIMIT 1). Sin asientos: (nil, nil).
func (r *TransactionRepo) LastDateByProduct(ctx context.Context, productID string) (*time.Time, error) {
	var createdAt time.Time
	err := r.q.QueryRow(ctx,
		`SELECT created_at FROM transactions WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		productID,
	).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last transaction date: %w", err)
	}
	return &createdAt, nil
}

// buildWhere arma el WHERE dinámico del filtro con placeholders posicionales.
func buildWhere(filter repository.TransactionFilter) (string, []any) {
	where := ""
	var args []any
	add := func(cond string, val any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, val)
		where += fmt.Sprintf(cond, len(args))
	}
	if filter.UserID != "" {
		add("t.user_id = $%d", filter.UserID)
	}
	if filter.ProductID != "" {
		add("t.product_id = $%d", filter.ProductID)
	}
	if filter.Type != "" {
		add("t.type = $%d", filter.Type)
	}
	if filter.From != nil {
		add("t.created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("t.created_at <= $%d", *filter.To)
	}
	return where, args
}

func scanWithNames(row pgx.Row) (*repository.TransactionWithNames, error) {
	var t repository.TransactionWithNames
	err := row.Scan(
		&t.ID, &t.UserID, &t.ProductID, &t.QuantityChange, &t.Type,
		&t.UnitPrice, &t.TotalValue, &t.Notes, &t.CreatedAt,
		&t.ProductName, &t.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
