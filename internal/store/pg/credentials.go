package pg

import (
	"context"
	"database/sql"
	"errors"

	"github.com/offineeds/oms/internal/identity"
)

var _ identity.CredentialStore = (*Store)(nil)

func (s *Store) CredentialByEmail(ctx context.Context, email string) (identity.Credential, error) {
	if s.db == nil {
		return identity.Credential{}, errNoDB
	}
	var cred identity.Credential
	err := s.db.QueryRowContext(ctx, `
		select id, email, password_hash, status
		from users
		where lower(email) = lower($1)
	`, email).Scan(&cred.UserID, &cred.Email, &cred.PasswordHash, &cred.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return identity.Credential{}, identity.ErrCredentialNotFound
	}
	if err != nil {
		return identity.Credential{}, err
	}
	return cred, nil
}

func (s *Store) CreateCredential(ctx context.Context, cred identity.Credential) error {
	if s.db == nil {
		return errNoDB
	}
	_, err := s.db.ExecContext(ctx, `
		insert into users (id, name, email, password_hash, status)
		values ($1, split_part($2, '@', 1), $2, $3, $4)
	`, cred.UserID, cred.Email, cred.PasswordHash, cred.Status)
	if err != nil {
		if pgErr, ok := maybePgError(err); ok && pgErr.Code == pgErrUniqueViolation {
			return identity.ErrCredentialExists
		}
		return err
	}
	return nil
}
