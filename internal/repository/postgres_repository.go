package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tempizhere/linktrack/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const linkColumns = "id, code, url, is_active, expires_at, created_at, user_id"

const clickColumns = "id, link_id, clicked_at, user_agent, browser, browser_version, os, os_version, device, " +
	"ip_hash, country, region, city, latitude, longitude, referrer, referrer_domain"

// uniqueViolation содержит код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

// PostgresRepository реализует LinkRepository и ClickRepository поверх PostgreSQL
type PostgresRepository struct {
	db     Database
	logger *zap.Logger
	// statsParallelism ограничивает число одновременных запросов статистики
	statsParallelism int
}

// NewPostgresRepository создаёт новый экземпляр PostgresRepository
func NewPostgresRepository(db Database, logger *zap.Logger) (*PostgresRepository, error) {
	if db == nil {
		return nil, errors.New("database is not configured")
	}
	return &PostgresRepository{
		db:               db,
		logger:           logger,
		statsParallelism: 4,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*models.ShortLink, error) {
	var (
		link    models.ShortLink
		expires sql.NullTime
	)
	if err := row.Scan(&link.ID, &link.Code, &link.URL, &link.IsActive, &expires, &link.CreatedAt, &link.UserID); err != nil {
		return nil, err
	}
	if expires.Valid {
		t := expires.Time
		link.ExpiresAt = &t
	}
	return &link, nil
}

func (r *PostgresRepository) queryLink(ctx context.Context, query string, arg string) (*models.ShortLink, error) {
	link, err := scanLink(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get link from database", zap.String("key", arg), zap.Error(err))
		return nil, fmt.Errorf("query link: %w", err)
	}
	return link, nil
}

// FindByCode возвращает ссылку по короткому коду
func (r *PostgresRepository) FindByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	return r.queryLink(ctx, "SELECT "+linkColumns+" FROM links WHERE code = $1", code)
}

// GetLink возвращает ссылку по идентификатору
func (r *PostgresRepository) GetLink(ctx context.Context, id string) (*models.ShortLink, error) {
	return r.queryLink(ctx, "SELECT "+linkColumns+" FROM links WHERE id = $1", id)
}

// CreateLink сохраняет ссылку, занятый код возвращает ErrCodeExists
func (r *PostgresRepository) CreateLink(ctx context.Context, link *models.ShortLink) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO links ("+linkColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (code) DO NOTHING",
		link.ID, link.Code, link.URL, link.IsActive, link.ExpiresAt, link.CreatedAt, link.UserID)
	if err != nil {
		r.logger.Error("Failed to save link to database", zap.String("code", link.Code), zap.Error(err))
		return fmt.Errorf("insert link: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}
	if n == 0 {
		return ErrCodeExists
	}
	return nil
}

// UpdateLink перезаписывает изменяемые поля ссылки
func (r *PostgresRepository) UpdateLink(ctx context.Context, link *models.ShortLink) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE links SET code = $2, url = $3, is_active = $4, expires_at = $5 WHERE id = $1",
		link.ID, link.Code, link.URL, link.IsActive, link.ExpiresAt)
	if isUniqueViolation(err) {
		return ErrCodeExists
	}
	if err != nil {
		r.logger.Error("Failed to update link", zap.String("id", link.ID), zap.Error(err))
		return fmt.Errorf("update link: %w", err)
	}
	return expectAffected(res)
}

// DeleteLink удаляет ссылку, переходы удаляются каскадно
func (r *PostgresRepository) DeleteLink(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM links WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Failed to delete link", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete link: %w", err)
	}
	return expectAffected(res)
}

// ListLinks возвращает ссылки пользователя, новые первыми
func (r *PostgresRepository) ListLinks(ctx context.Context, userID string, limit, offset int) ([]models.ShortLink, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+linkColumns+" FROM links WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3",
		userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list links", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	links := []models.ShortLink{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// CountLinks возвращает число ссылок и число их владельцев
func (r *PostgresRepository) CountLinks(ctx context.Context) (int64, int64, error) {
	var links, users int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT NULLIF(user_id, '')) FROM links").Scan(&links, &users)
	if err != nil {
		r.logger.Error("Failed to count links", zap.Error(err))
		return 0, 0, fmt.Errorf("count links: %w", err)
	}
	return links, users, nil
}

// InsertClick сохраняет запись о переходе одним запросом
func (r *PostgresRepository) InsertClick(ctx context.Context, c *models.ClickRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO clicks ("+clickColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)",
		c.ID, c.LinkID, c.ClickedAt, c.UserAgent, c.Browser, c.BrowserVersion, c.OS, c.OSVersion, string(c.Device),
		c.IPHash, c.Country, c.Region, c.City, c.Latitude, c.Longitude, c.Referrer, c.ReferrerDomain)
	if err != nil {
		return fmt.Errorf("insert click: %w", err)
	}
	return nil
}

func scanClick(row rowScanner) (*models.ClickRecord, error) {
	var (
		c      models.ClickRecord
		device string
		vals   [13]sql.NullString
	)
	err := row.Scan(&c.ID, &c.LinkID, &c.ClickedAt,
		&vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &device,
		&vals[5], &vals[6], &vals[7], &vals[8], &vals[9], &vals[10], &vals[11], &vals[12])
	if err != nil {
		return nil, err
	}
	c.Device = models.DeviceType(device)
	targets := []**string{
		&c.UserAgent, &c.Browser, &c.BrowserVersion, &c.OS, &c.OSVersion,
		&c.IPHash, &c.Country, &c.Region, &c.City, &c.Latitude, &c.Longitude, &c.Referrer, &c.ReferrerDomain,
	}
	for i, target := range targets {
		*target = nullString(vals[i])
	}
	return &c, nil
}

// GetClick возвращает переход по идентификатору
func (r *PostgresRepository) GetClick(ctx context.Context, id string) (*models.ClickRecord, error) {
	c, err := scanClick(r.db.QueryRowContext(ctx, "SELECT "+clickColumns+" FROM clicks WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get click", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("get click: %w", err)
	}
	return c, nil
}

// ListClicks возвращает переходы по ссылке, новые первыми
func (r *PostgresRepository) ListClicks(ctx context.Context, linkID string, limit, offset int) ([]models.ClickRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clickColumns+" FROM clicks WHERE link_id = $1 ORDER BY clicked_at DESC LIMIT $2 OFFSET $3",
		linkID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list clicks", zap.String("link_id", linkID), zap.Error(err))
		return nil, fmt.Errorf("list clicks: %w", err)
	}
	defer rows.Close()

	clicks := []models.ClickRecord{}
	for rows.Next() {
		c, err := scanClick(rows)
		if err != nil {
			return nil, fmt.Errorf("scan click: %w", err)
		}
		clicks = append(clicks, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clicks: %w", err)
	}
	return clicks, nil
}

// DeleteClick удаляет один переход
func (r *PostgresRepository) DeleteClick(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM clicks WHERE id = $1", id)
	if err != nil {
		r.logger.Error("Failed to delete click", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete click: %w", err)
	}
	return expectAffected(res)
}

// DeleteClicksByLink удаляет все переходы ссылки
func (r *PostgresRepository) DeleteClicksByLink(ctx context.Context, linkID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM clicks WHERE link_id = $1", linkID)
	if err != nil {
		r.logger.Error("Failed to delete clicks", zap.String("link_id", linkID), zap.Error(err))
		return 0, fmt.Errorf("delete clicks: %w", err)
	}
	return res.RowsAffected()
}

// CountClicks возвращает общее число переходов
func (r *PostgresRepository) CountClicks(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clicks").Scan(&n); err != nil {
		r.logger.Error("Failed to count clicks", zap.Error(err))
		return 0, fmt.Errorf("count clicks: %w", err)
	}
	return n, nil
}

// Stats считает статистику переходов по ссылке.
// Запросы группировок выполняются параллельно.
func (r *PostgresRepository) Stats(ctx context.Context, linkID string, filter models.StatsFilter) (*models.ClickStats, error) {
	where, args := statsWhere(linkID, filter)
	stats := &models.ClickStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.statsParallelism, 1))

	g.Go(func() error {
		return r.db.QueryRowContext(gctx, "SELECT COUNT(*) FROM clicks WHERE "+where, args...).Scan(&stats.TotalClicks)
	})
	g.Go(func() error {
		return r.db.QueryRowContext(gctx, "SELECT COUNT(DISTINCT ip_hash) FROM clicks WHERE "+where, args...).
			Scan(&stats.UniqueVisitors)
	})
	g.Go(func() error {
		buckets, err := r.topBuckets(gctx, "country", where, args)
		stats.TopCountries = models.MapBuckets(buckets, models.ByCountry)
		return err
	})
	g.Go(func() error {
		buckets, err := r.topBuckets(gctx, "referrer_domain", where+" AND referrer_domain IS NOT NULL", args)
		stats.TopReferrers = models.MapBuckets(buckets, models.ByReferrer)
		return err
	})
	g.Go(func() error {
		buckets, err := r.topBuckets(gctx, "browser", where, args)
		stats.TopBrowsers = models.MapBuckets(buckets, models.ByBrowser)
		return err
	})
	g.Go(func() error {
		buckets, err := r.topBuckets(gctx, "device", where, args)
		stats.TopDevices = models.MapBuckets(buckets, models.ByDevice)
		return err
	})
	g.Go(func() (err error) {
		stats.ClicksByDate, err = r.clicksByDate(gctx, where, args)
		return err
	})

	if err := g.Wait(); err != nil {
		r.logger.Error("Failed to compute link stats", zap.String("link_id", linkID), zap.Error(err))
		return nil, fmt.Errorf("link stats: %w", err)
	}
	return stats, nil
}

func (r *PostgresRepository) topBuckets(ctx context.Context, column, where string, args []any) ([]models.Bucket, error) {
	query := "SELECT " + column + ", COUNT(*) AS clicks FROM clicks WHERE " + where +
		" GROUP BY " + column + " ORDER BY clicks DESC LIMIT " + strconv.Itoa(TopLimit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []models.Bucket{}
	for rows.Next() {
		var (
			value sql.NullString
			b     models.Bucket
		)
		if err := rows.Scan(&value, &b.Clicks); err != nil {
			return nil, err
		}
		b.Value = nullString(value)
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *PostgresRepository) clicksByDate(ctx context.Context, where string, args []any) ([]models.DateClicks, error) {
	query := "SELECT TO_CHAR(DATE(clicked_at AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS day, COUNT(*) FROM clicks WHERE " +
		where + " GROUP BY day ORDER BY day LIMIT " + strconv.Itoa(DateLimit)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []models.DateClicks{}
	for rows.Next() {
		var d models.DateClicks
		if err := rows.Scan(&d.Date, &d.Clicks); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// statsWhere строит условие выборки переходов, обе границы включительно
func statsWhere(linkID string, filter models.StatsFilter) (string, []any) {
	conds := []string{"link_id = $1"}
	args := []any{linkID}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, "clicked_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, "clicked_at <= $"+strconv.Itoa(len(args)))
	}
	return strings.Join(conds, " AND "), args
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
