package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/pricing"
)

// PackageRepository wraps DB access for tour packages. Optional pricing
// fields are stored as nullable columns so presence survives the round
// trip (fixed-split mode depends on it).
type PackageRepository struct {
	DB *sql.DB
}

func (r PackageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const packageColumns = `
	id,
	COALESCE(title,''),
	COALESCE(origin,''),
	COALESCE(destination,''),
	COALESCE(description,''),
	COALESCE(price_one_way,0),
	COALESCE(price_return_only,0),
	COALESCE(price_round_trip,0),
	COALESCE(supports_round_trip,0),
	deposit_amount,
	first_leg_payout,
	second_leg_payout,
	deposit_percentage,
	COALESCE(active,1)`

func (r PackageRepository) GetByID(id int64) (models.TourPackage, error) {
	if id <= 0 {
		return models.TourPackage{}, domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	db := r.db()
	if db == nil {
		return models.TourPackage{}, domain.InternalError{Msg: "banco indisponível"}
	}

	row := db.QueryRow(`SELECT `+packageColumns+` FROM packages WHERE id=? LIMIT 1`, id)
	p, err := scanPackage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TourPackage{}, domain.NotFoundError{Resource: "pacote", Err: err}
		}
		return models.TourPackage{}, err
	}
	return p, nil
}

func (r PackageRepository) List(onlyActive bool) ([]models.TourPackage, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "banco indisponível"}
	}

	query := `SELECT ` + packageColumns + ` FROM packages`
	if onlyActive {
		query += ` WHERE COALESCE(active,1)=1`
	}
	query += ` ORDER BY id DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TourPackage{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PackageRepository) Create(p models.TourPackage) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "banco indisponível"}
	}

	res, err := db.Exec(`
		INSERT INTO packages
			(title, origin, destination, description,
			 price_one_way, price_return_only, price_round_trip, supports_round_trip,
			 deposit_amount, first_leg_payout, second_leg_payout, deposit_percentage,
			 active, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,1,NOW(),NOW())`,
		strings.TrimSpace(p.Title), strings.TrimSpace(p.Origin), strings.TrimSpace(p.Destination), p.Description,
		int64(p.PriceOneWay), int64(p.PriceReturnOnly), int64(p.PriceRoundTrip), p.SupportsRoundTrip,
		nullMoney(p.DepositAmount), nullMoney(p.FirstLegPayout), nullMoney(p.SecondLegPayout), nullFloat(p.DepositPercentage),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update applies a key-presence patch built from the raw JSON body.
func (r PackageRepository) Update(id int64, raw json.RawMessage) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	upd, err := buildPackagePatch(raw)
	if err != nil {
		return err
	}

	sets := []string{}
	args := []any{}

	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}

	if upd.Title != nil {
		add("title", strings.TrimSpace(*upd.Title))
	}
	if upd.Origin != nil {
		add("origin", strings.TrimSpace(*upd.Origin))
	}
	if upd.Destination != nil {
		add("destination", strings.TrimSpace(*upd.Destination))
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.PriceOneWay != nil {
		add("price_one_way", int64(*upd.PriceOneWay))
	}
	if upd.PriceReturnOnly != nil {
		add("price_return_only", int64(*upd.PriceReturnOnly))
	}
	if upd.PriceRoundTrip != nil {
		add("price_round_trip", int64(*upd.PriceRoundTrip))
	}
	if upd.SupportsRoundTrip != nil {
		add("supports_round_trip", *upd.SupportsRoundTrip)
	}
	if upd.DepositAmount != nil {
		add("deposit_amount", int64(*upd.DepositAmount))
	}
	if upd.FirstLegPayout != nil {
		add("first_leg_payout", int64(*upd.FirstLegPayout))
	}
	if upd.SecondLegPayout != nil {
		add("second_leg_payout", int64(*upd.SecondLegPayout))
	}
	if upd.DepositPercentage != nil {
		add("deposit_percentage", *upd.DepositPercentage)
	}
	if upd.Active != nil {
		add("active", *upd.Active)
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "banco indisponível"}
	}
	_, err = db.Exec(`UPDATE packages SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	return err
}

func (r PackageRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "banco indisponível"}
	}
	// soft delete: reservations keep referencing the row
	_, err := db.Exec(`UPDATE packages SET active=0, updated_at=NOW() WHERE id=?`, id)
	return err
}

// EnsureSchema creates the packages table when absent.
func (r PackageRepository) EnsureSchema() error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "banco indisponível"}
	}
	if intdb.HasTable(db, "packages") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS packages (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	origin VARCHAR(255) NOT NULL DEFAULT '',
	destination VARCHAR(255) NOT NULL DEFAULT '',
	description TEXT,
	price_one_way BIGINT NOT NULL DEFAULT 0,
	price_return_only BIGINT NOT NULL DEFAULT 0,
	price_round_trip BIGINT NOT NULL DEFAULT 0,
	supports_round_trip TINYINT(1) NOT NULL DEFAULT 0,
	deposit_amount BIGINT NULL,
	first_leg_payout BIGINT NULL,
	second_leg_payout BIGINT NULL,
	deposit_percentage DOUBLE NULL,
	active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackage(row rowScanner) (models.TourPackage, error) {
	var p models.TourPackage
	var deposit, firstLeg, secondLeg sql.NullInt64
	var pct sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Origin,
		&p.Destination,
		&p.Description,
		&p.PriceOneWay,
		&p.PriceReturnOnly,
		&p.PriceRoundTrip,
		&p.SupportsRoundTrip,
		&deposit,
		&firstLeg,
		&secondLeg,
		&pct,
		&p.Active,
	)
	if err != nil {
		return models.TourPackage{}, err
	}

	if deposit.Valid {
		m := pricing.Money(deposit.Int64)
		p.DepositAmount = &m
	}
	if firstLeg.Valid {
		m := pricing.Money(firstLeg.Int64)
		p.FirstLegPayout = &m
	}
	if secondLeg.Valid {
		m := pricing.Money(secondLeg.Int64)
		p.SecondLegPayout = &m
	}
	if pct.Valid {
		v := pct.Float64
		p.DepositPercentage = &v
	}
	return p, nil
}

func nullMoney(m *pricing.Money) any {
	if m == nil {
		return nil
	}
	return int64(*m)
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// buildPackagePatch decodes a PATCH body into pointers whose presence
// mirrors the JSON keys. Monetary values arrive as 2-decimal numbers.
func buildPackagePatch(raw json.RawMessage) (models.TourPackageUpdate, error) {
	var body struct {
		Title             *string        `json:"title"`
		Origin            *string        `json:"origin"`
		Destination       *string        `json:"destination"`
		Description       *string        `json:"description"`
		PriceOneWay       *pricing.Money `json:"priceOneWay"`
		PriceReturnOnly   *pricing.Money `json:"priceReturnOnly"`
		PriceRoundTrip    *pricing.Money `json:"priceRoundTrip"`
		SupportsRoundTrip *bool          `json:"supportsRoundTrip"`
		DepositAmount     *pricing.Money `json:"depositAmount"`
		FirstLegPayout    *pricing.Money `json:"firstLegPayout"`
		SecondLegPayout   *pricing.Money `json:"secondLegPayout"`
		DepositPercentage *float64       `json:"depositPercentage"`
		Active            *bool          `json:"active"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return models.TourPackageUpdate{}, domain.ValidationError{Field: "body", Msg: "payload inválido", Err: err}
	}
	return models.TourPackageUpdate{
		Title:             body.Title,
		Origin:            body.Origin,
		Destination:       body.Destination,
		Description:       body.Description,
		PriceOneWay:       body.PriceOneWay,
		PriceReturnOnly:   body.PriceReturnOnly,
		PriceRoundTrip:    body.PriceRoundTrip,
		SupportsRoundTrip: body.SupportsRoundTrip,
		DepositAmount:     body.DepositAmount,
		FirstLegPayout:    body.FirstLegPayout,
		SecondLegPayout:   body.SecondLegPayout,
		DepositPercentage: body.DepositPercentage,
		Active:            body.Active,
	}, nil
}
