package lead

import (
	"errors"
	"strings"

	leaderrors "go-crm/internal/lead/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaderrors.ErrLeadNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_lead_number" {
			return leaderrors.ErrLeadNumberAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_lead_number") {
		return leaderrors.ErrLeadNumberAlreadyExists
	}

	return err
}
