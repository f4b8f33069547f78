package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/offineeds/oms/internal/access"
)

var _ access.Store = (*Store)(nil)

func (s *Store) User(ctx context.Context, userID string) (access.UserRow, error) {
	if s.db == nil {
		return access.UserRow{}, errNoDB
	}
	return s.scanUser(s.db.QueryRowContext(ctx, `
		select id, name, email, coalesce(employee_id, ''), status
		from users
		where id = $1
	`, userID))
}

func (s *Store) UserByEmail(ctx context.Context, email string) (access.UserRow, error) {
	if s.db == nil {
		return access.UserRow{}, errNoDB
	}
	return s.scanUser(s.db.QueryRowContext(ctx, `
		select id, name, email, coalesce(employee_id, ''), status
		from users
		where lower(email) = lower($1)
	`, email))
}

func (s *Store) scanUser(row *sql.Row) (access.UserRow, error) {
	var u access.UserRow
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.EmployeeID, &u.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return access.UserRow{}, access.ErrUserNotFound
	}
	if err != nil {
		return access.UserRow{}, err
	}
	return u, nil
}

func (s *Store) ListActiveUsers(ctx context.Context) ([]access.UserRow, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, name, email, coalesce(employee_id, ''), status
		from users
		where status = 'active'
		order by name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []access.UserRow
	for rows.Next() {
		var u access.UserRow
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.EmployeeID, &u.Status); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]access.RoleRecord, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, name, coalesce(description, ''), is_active
		from roles
		where is_active
		order by id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []access.RoleRecord
	for rows.Next() {
		var r access.RoleRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Active); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *Store) ListModules(ctx context.Context) ([]access.ModuleRecord, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select id, name, coalesce(description, ''), is_active
		from modules
		where is_active
		order by id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []access.ModuleRecord
	for rows.Next() {
		var m access.ModuleRecord
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Active); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return modules, nil
}

func (s *Store) ListActiveGrants(ctx context.Context, userID string) ([]access.Record, error) {
	if s.db == nil {
		return nil, errNoDB
	}
	rows, err := s.db.QueryContext(ctx, `
		select ua.id, ua.user_id, ua.role_id, ua.module_id, ua.access_level, ua.status,
		       ua.created_at, coalesce(ua.created_by, ''), ua.updated_at, coalesce(ua.updated_by, ''),
		       r.id, r.name, coalesce(r.description, ''), r.is_active,
		       m.id, m.name, coalesce(m.description, ''), m.is_active
		from user_access ua
		join roles r on r.id = ua.role_id
		join modules m on m.id = ua.module_id
		where ua.user_id = $1 and ua.status = 'active'
		order by m.id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []access.Record
	for rows.Next() {
		var rec access.Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.RoleID, &rec.ModuleID, &rec.Level, &rec.Status,
			&rec.CreatedAt, &rec.CreatedBy, &rec.UpdatedAt, &rec.UpdatedBy,
			&rec.Role.ID, &rec.Role.Name, &rec.Role.Description, &rec.Role.Active,
			&rec.Module.ID, &rec.Module.Name, &rec.Module.Description, &rec.Module.Active,
		); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *Store) InsertGrants(ctx context.Context, recs []access.Record) error {
	if s.db == nil {
		return errNoDB
	}
	if len(recs) == 0 {
		return nil
	}

	var (
		values []string
		args   []any
		idx    = 1
	)
	for _, rec := range recs {
		values = append(values, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			idx, idx+1, idx+2, idx+3, idx+4, idx+5, idx+6, idx+7))
		args = append(args, rec.ID, rec.UserID, rec.RoleID, rec.ModuleID,
			string(rec.Level), string(rec.Status), nullIfEmpty(rec.CreatedBy), nullIfEmpty(rec.UpdatedBy))
		idx += 8
	}

	query := fmt.Sprintf(`
		insert into user_access (id, user_id, role_id, module_id, access_level, status, created_by, updated_by)
		values %s
	`, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if pgErr, ok := maybePgError(err); ok {
			switch pgErr.Code {
			case pgErrUniqueViolation:
				return access.ErrConflict
			case pgErrForeignKeyViolation:
				return access.ErrNotFound
			}
		}
		return err
	}
	return nil
}

func (s *Store) UpdateGrantLevel(ctx context.Context, userID string, moduleID int64, level access.Level, updatedBy string) error {
	if s.db == nil {
		return errNoDB
	}
	res, err := s.db.ExecContext(ctx, `
		update user_access
		set access_level = $3, updated_by = $4, updated_at = now()
		where user_id = $1 and module_id = $2
	`, userID, moduleID, string(level), nullIfEmpty(updatedBy))
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return access.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteGrants(ctx context.Context, userID string, moduleID *int64) error {
	if s.db == nil {
		return errNoDB
	}
	var (
		res sql.Result
		err error
	)
	if moduleID != nil {
		res, err = s.db.ExecContext(ctx, `
			delete from user_access
			where user_id = $1 and module_id = $2
		`, userID, *moduleID)
	} else {
		res, err = s.db.ExecContext(ctx, `delete from user_access where user_id = $1`, userID)
	}
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// Revoking everything from a grantless user is a no-op, not an error;
	// a targeted delete still reports the missing grant.
	if aff == 0 && moduleID != nil {
		return access.ErrNotFound
	}
	return nil
}
