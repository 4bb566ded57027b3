// Package sqlstore is a database/sql storage driver for SQLite and Postgres.
// The schema is owned by embedded goose migrations.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"rental-backend/models"
	"rental-backend/storage"
)

//go:embed migrations
var migrations embed.FS

type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

var _ storage.Store = (*Store)(nil)

// Open connects, applies pending migrations and returns the store.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == SQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	var (
		dir      string
		gdialect goose.Dialect
	)
	switch s.dialect {
	case SQLite:
		dir, gdialect = "migrations/sqlite", goose.DialectSQLite3
	case Postgres:
		dir, gdialect = "migrations/postgres", goose.DialectPostgres
	default:
		return fmt.Errorf("unsupported dialect %q", s.dialect)
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(gdialect, s.db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind turns ? placeholders into $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type scanner interface {
	Scan(dest ...any) error
}

const propertyColumns = `id, name, address_state, address_city, address_country, rating, category,
	price, offers_bed, offers_shower, offers_occupants, image, discount`

func scanProperty(row scanner) (models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.Name, &p.Address.State, &p.Address.City, &p.Address.Country,
		&p.Rating, &p.Category, &p.Price,
		&p.Offers.Bed, &p.Offers.Shower, &p.Offers.Occupants,
		&p.Image, &p.Discount,
	)
	return p, err
}

func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	items := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (s *Store) GetProperty(ctx context.Context, id models.PropertyID) (models.Property, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+propertyColumns+` FROM properties WHERE id = ?`), uint64(id))
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Property{}, models.ErrPropertyNotFound
	}
	if err != nil {
		return models.Property{}, fmt.Errorf("get property %d: %w", id, err)
	}
	return p, nil
}

func (s *Store) SeedProperties(ctx context.Context, properties []models.Property) (int, error) {
	query := s.rebind(`INSERT INTO properties (` + propertyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`)

	added := 0
	for _, p := range properties {
		category := p.Category
		if category == nil {
			category = []string{}
		}
		res, err := s.db.ExecContext(ctx, query,
			uint64(p.ID), p.Name, p.Address.State, p.Address.City, p.Address.Country,
			p.Rating, category, p.Price,
			p.Offers.Bed, p.Offers.Shower, p.Offers.Occupants,
			p.Image, p.Discount,
		)
		if err != nil {
			return added, fmt.Errorf("seed property %d: %w", p.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, err
		}
		added += int(n)
	}
	return added, nil
}

const bookingColumns = `id, property_id, property_name, first_name, last_name, email, phone,
	check_in_date, check_out_date, guests, total_nights, price_per_night, booking_fee, total_price,
	card_number, expiration_date, cvv,
	billing_street, billing_city, billing_state, billing_zip_code, billing_country,
	status, created_at`

func scanBooking(row scanner) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.PropertyID, &b.PropertyName, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.CheckInDate, &b.CheckOutDate, &b.Guests, &b.TotalNights, &b.PricePerNight, &b.BookingFee, &b.TotalPrice,
		&b.CardNumber, &b.ExpirationDate, &b.CVV,
		&b.BillingAddress.Street, &b.BillingAddress.City, &b.BillingAddress.State,
		&b.BillingAddress.ZipCode, &b.BillingAddress.Country,
		&b.Status, &b.CreatedAt,
	)
	return b, err
}

func (s *Store) CreateBooking(ctx context.Context, b models.Booking) error {
	query := s.rebind(`INSERT INTO bookings (` + bookingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		b.ID, uint64(b.PropertyID), b.PropertyName, b.FirstName, b.LastName, b.Email, b.Phone,
		b.CheckInDate, b.CheckOutDate, b.Guests, b.TotalNights, b.PricePerNight, b.BookingFee, b.TotalPrice,
		b.CardNumber, b.ExpirationDate, b.CVV,
		b.BillingAddress.Street, b.BillingAddress.City, b.BillingAddress.State,
		b.BillingAddress.ZipCode, b.BillingAddress.Country,
		string(b.Status), b.CreatedAt.UTC(),
	)
	if isDuplicateKey(err) {
		return fmt.Errorf("booking %s: %w", b.ID, models.ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	items := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (s *Store) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`), id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, models.ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

const reviewColumns = `id, property_id, user_id, user_name, user_avatar, rating, comment, date, helpful`

func scanReview(row scanner) (models.Review, error) {
	var r models.Review
	err := row.Scan(&r.ID, &r.PropertyID, &r.UserID, &r.UserName, &r.UserAvatar,
		&r.Rating, &r.Comment, &r.Date, &r.Helpful)
	return r, err
}

func (s *Store) ListReviews(ctx context.Context, propertyID models.PropertyID) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT `+reviewColumns+` FROM reviews WHERE property_id = ? ORDER BY date DESC, id`),
		uint64(propertyID))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	items := []models.Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func (s *Store) insertReview(ctx context.Context, r models.Review, ignoreConflict bool) (int64, error) {
	query := `INSERT INTO reviews (` + reviewColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if ignoreConflict {
		query += ` ON CONFLICT (id) DO NOTHING`
	}
	res, err := s.db.ExecContext(ctx, s.rebind(query),
		r.ID, uint64(r.PropertyID), r.UserID, r.UserName, r.UserAvatar,
		r.Rating, r.Comment, r.Date.UTC(), r.Helpful)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) CreateReview(ctx context.Context, r models.Review) error {
	_, err := s.insertReview(ctx, r, false)
	if isDuplicateKey(err) {
		return fmt.Errorf("review %s: %w", r.ID, models.ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (s *Store) IncrementHelpful(ctx context.Context, reviewID string) (models.Review, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.rebind(`UPDATE reviews SET helpful = helpful + 1 WHERE id = ?`), reviewID)
	if err != nil {
		return models.Review{}, fmt.Errorf("increment helpful: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Review{}, err
	} else if n == 0 {
		return models.Review{}, models.ErrReviewNotFound
	}

	r, err := scanReview(tx.QueryRowContext(ctx, s.rebind(`SELECT `+reviewColumns+` FROM reviews WHERE id = ?`), reviewID))
	if err != nil {
		return models.Review{}, fmt.Errorf("reload review: %w", err)
	}
	return r, tx.Commit()
}

func (s *Store) SeedReviews(ctx context.Context, reviews []models.Review) (int, error) {
	added := 0
	for _, r := range reviews {
		n, err := s.insertReview(ctx, r, true)
		if err != nil {
			return added, fmt.Errorf("seed review %s: %w", r.ID, err)
		}
		added += int(n)
	}
	return added, nil
}
