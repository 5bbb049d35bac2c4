package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

const (
	entitiesTable = "ad_entities e"

	// 12 colunas por linha; mantém o INSERT bem abaixo do limite de parâmetros do Postgres
	upsertChunkSize = 500
)

var ErrEntityNotFound = errors.New("entity not found")

var entityColumns = "e.id, e.external_id, e.account_id, e.campaign_id, e.adset_id, e.name, e.status, e.daily_budget, e.lifetime_budget, e.updated_at"

type EntityRepository interface {
	List(ctx context.Context, tier domain.Tier, scope domain.Scope, page domain.Page) ([]domain.RawEntity, int, error)
	SaveOrUpdate(ctx context.Context, tier domain.Tier, entities []domain.RawEntity) error
	UpdateStatus(ctx context.Context, tier domain.Tier, externalID string, status domain.EntityStatus) error
}

type entityRepository struct {
	conn *postgres.Connection
}

func NewEntityRepository(conn *postgres.Connection) EntityRepository {
	return &entityRepository{
		conn: conn,
	}
}

// scopeFilter monta o filtro comum da listagem e da contagem; linhas DELETED nunca são listadas
func scopeFilter(tier domain.Tier, scope domain.Scope) squirrel.And {
	where := squirrel.And{
		squirrel.Eq{"e.tier": string(tier)},
		squirrel.Eq{"e.account_id": scope.AccountID},
		squirrel.NotEq{"e.status": string(domain.EntityStatusDeleted)},
	}

	if tier != domain.TierCampaign && scope.CampaignID != "" {
		where = append(where, squirrel.Eq{"e.campaign_id": scope.CampaignID})
	}

	if tier == domain.TierAd && scope.AdSetID != "" {
		where = append(where, squirrel.Eq{"e.adset_id": scope.AdSetID})
	}

	return where
}

func buildListQuery(tier domain.Tier, scope domain.Scope, page domain.Page) squirrel.SelectBuilder {
	offset := uint64(0)
	if page.Number > 1 {
		offset = uint64((page.Number - 1) * page.Size)
	}

	return squirrel.
		Select(entityColumns).
		From(entitiesTable).
		Where(scopeFilter(tier, scope)).
		OrderBy("e.updated_at DESC", "e.name ASC").
		Limit(uint64(page.Size)).
		Offset(offset).
		PlaceholderFormat(squirrel.Dollar)
}

func buildCountQuery(tier domain.Tier, scope domain.Scope) squirrel.SelectBuilder {
	return squirrel.
		Select("COUNT(*)").
		From(entitiesTable).
		Where(scopeFilter(tier, scope)).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *entityRepository) List(ctx context.Context, tier domain.Tier, scope domain.Scope, page domain.Page) ([]domain.RawEntity, int, error) {
	countSQL, countArgs, err := buildCountQuery(tier, scope).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar entidades: %w", err)
	}

	if total == 0 {
		return []domain.RawEntity{}, 0, nil
	}

	listSQL, listArgs, err := buildListQuery(tier, scope, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entities := make([]domain.RawEntity, 0, page.Size)
	for rows.Next() {
		entity, err := r.scanEntity(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear entidade: %w", err)
		}
		entities = append(entities, entity)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entities, total, nil
}

func (r *entityRepository) scanEntity(rows *sql.Rows) (domain.RawEntity, error) {
	var (
		entity                      domain.RawEntity
		externalID, campaignID      sql.NullString
		adsetID                     sql.NullString
		dailyBudget, lifetimeBudget sql.NullFloat64
		status                      string
	)

	if err := rows.Scan(
		&entity.DBID,
		&externalID,
		&entity.AccountID,
		&campaignID,
		&adsetID,
		&entity.Name,
		&status,
		&dailyBudget,
		&lifetimeBudget,
		&entity.UpdatedAt,
	); err != nil {
		return entity, err
	}

	entity.ExternalID = externalID.String
	entity.CampaignID = campaignID.String
	entity.AdSetID = adsetID.String
	entity.Status = domain.EntityStatus(status)

	if dailyBudget.Valid {
		v := dailyBudget.Float64
		entity.DailyBudget = &v
	}
	if lifetimeBudget.Valid {
		v := lifetimeBudget.Float64
		entity.LifetimeBudget = &v
	}

	return entity, nil
}

func buildUpsertQuery(tier domain.Tier, entities []domain.RawEntity, now time.Time) (squirrel.InsertBuilder, error) {
	query := squirrel.StatementBuilder.
		Insert("ad_entities").
		Columns("id", "tier", "external_id", "account_id", "campaign_id", "adset_id", "name", "status",
			"daily_budget", "lifetime_budget", "created_at", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, entity := range entities {
		id, err := utils.GenerateID()
		if err != nil {
			return query, fmt.Errorf("erro ao gerar id local: %w", err)
		}

		updatedAt := entity.UpdatedAt
		if updatedAt.IsZero() {
			updatedAt = now
		}

		query = query.Values(
			id,
			string(tier),
			entity.ExternalID,
			entity.AccountID,
			nullableString(entity.CampaignID),
			nullableString(entity.AdSetID),
			entity.Name,
			string(entity.Status),
			entity.DailyBudget,
			entity.LifetimeBudget,
			now,
			updatedAt,
		)
	}

	// O id local é estável: em conflito só os dados espelhados são atualizados
	query = query.Suffix(`
		ON CONFLICT (tier, external_id) DO UPDATE SET
			account_id = EXCLUDED.account_id,
			campaign_id = EXCLUDED.campaign_id,
			adset_id = EXCLUDED.adset_id,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			daily_budget = EXCLUDED.daily_budget,
			lifetime_budget = EXCLUDED.lifetime_budget,
			updated_at = EXCLUDED.updated_at
	`)

	return query, nil
}

// dedupeByExternalID mantém a última ocorrência de cada id externo na posição da primeira.
// Um mesmo INSERT ... ON CONFLICT não pode atualizar a mesma linha duas vezes, e a paginação
// por cursor da plataforma pode repetir registros.
func dedupeByExternalID(entities []domain.RawEntity) []domain.RawEntity {
	positions := make(map[string]int, len(entities))
	out := make([]domain.RawEntity, 0, len(entities))

	for _, entity := range entities {
		if idx, seen := positions[entity.ExternalID]; seen {
			out[idx] = entity
			continue
		}
		positions[entity.ExternalID] = len(out)
		out = append(out, entity)
	}

	return out
}

func (r *entityRepository) SaveOrUpdate(ctx context.Context, tier domain.Tier, entities []domain.RawEntity) error {
	if len(entities) == 0 {
		return nil
	}

	now := time.Now()
	entities = dedupeByExternalID(entities)

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(entities); start += upsertChunkSize {
			end := start + upsertChunkSize
			if end > len(entities) {
				end = len(entities)
			}

			query, err := buildUpsertQuery(tier, entities[start:end], now)
			if err != nil {
				return err
			}

			sqlQuery, args, err := query.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return wrapPQError(err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"tier":  tier,
			"total": len(entities),
		}).Debug("Entidades espelhadas no banco local")

		return nil
	})
}

func (r *entityRepository) UpdateStatus(ctx context.Context, tier domain.Tier, externalID string, status domain.EntityStatus) error {
	if externalID == "" {
		return errors.New("external ID is required")
	}

	sqlQuery, args, err := squirrel.
		Update("ad_entities").
		Set("status", string(status)).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"tier": string(tier), "external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return wrapPQError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

func wrapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
