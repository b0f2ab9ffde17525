// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ATPsolar

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/atpsolar/credential-service/migrations"
	"github.com/atpsolar/credential-service/models"
)

// userColumns is the canonical column order used by every user query.
// Scan destinations in repository_user.go must follow the same order.
var userColumns = []string{"user_id", "email", "password_hash", "phone", "role", "created_at"}

// builder returns a squirrel statement builder with the placeholder format
// matching this connection's dialect ($1 for Postgres, ? for SQLite).
// All user input reaches the database exclusively through bind variables.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == migrations.DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns("email", "password_hash", "phone", "role").
		Values(user.Email, user.PasswordHash, user.Phone, user.Role).
		Suffix("RETURNING user_id, email, password_hash, phone, role, created_at").
		ToSql()
}

func buildSelectUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("created_at", "user_id").
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Delete(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildSelectSitesForUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("s.site_id", "s.name", "s.bucket_name", "s.location", "s.total_power").
		From("sites s").
		Join("user_site_access a ON a.site_id = s.site_id").
		Where(sq.Eq{"a.user_id": userID}).
		OrderBy("s.site_id").
		ToSql()
}
