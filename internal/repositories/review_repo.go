package repositories

import (
	"database/sql"
	"strings"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

func (r ReviewRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReviewRepository) Create(rev models.Review) (int64, error) {
	if rev.PackageID <= 0 {
		return 0, domain.ValidationError{Field: "package_id", Msg: "id inválido"}
	}
	if rev.Rating < 1 || rev.Rating > 5 {
		return 0, domain.ValidationError{Field: "rating", Msg: "nota deve ficar entre 1 e 5"}
	}
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "banco indisponível"}
	}
	if err := r.ensureSchema(); err != nil {
		return 0, domain.InternalError{Err: err}
	}

	res, err := db.Exec(`
		INSERT INTO reviews (package_id, client_id, rating, comment, created_at)
		VALUES (?,?,?,?,NOW())`,
		rev.PackageID, rev.ClientID, rev.Rating, strings.TrimSpace(rev.Comment),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ReviewRepository) ListByPackage(packageID int64) ([]models.Review, error) {
	if packageID <= 0 {
		return nil, domain.ValidationError{Field: "package_id", Msg: "id inválido"}
	}
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "banco indisponível"}
	}
	if !intdb.HasTable(db, "reviews") {
		return []models.Review{}, nil
	}

	rows, err := db.Query(`
		SELECT id, package_id, client_id, rating, COALESCE(comment,''), COALESCE(created_at,'')
		FROM reviews
		WHERE package_id=?
		ORDER BY id DESC`, packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.PackageID, &rev.ClientID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r ReviewRepository) ensureSchema() error {
	db := r.db()
	if intdb.HasTable(db, "reviews") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS reviews (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	package_id BIGINT NOT NULL,
	client_id BIGINT NOT NULL,
	rating INT NOT NULL,
	comment TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_package (package_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}
