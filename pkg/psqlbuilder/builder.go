package psqlbuilder

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Dialect SQL-диалект хранилища
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDialect проверяет имя драйвера
func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case DialectPostgres, DialectSQLite:
		return Dialect(driver), nil
	default:
		return "", fmt.Errorf("psqlbuilder: unsupported dialect %q", driver)
	}
}

// Builder обертка над squirrel.StatementBuilderType с плейсхолдерами диалекта:
// $1, $2 для PostgreSQL и ? для SQLite
type Builder struct {
	sb      squirrel.StatementBuilderType
	dialect Dialect
}

// New создает builder для указанного диалекта
func New(dialect Dialect) Builder {
	format := squirrel.PlaceholderFormat(squirrel.Dollar)
	if dialect == DialectSQLite {
		format = squirrel.Question
	}
	return Builder{
		sb:      squirrel.StatementBuilder.PlaceholderFormat(format),
		dialect: dialect,
	}
}

// Dialect возвращает диалект builder'а
func (b Builder) Dialect() Dialect {
	return b.dialect
}

// Select начинает SELECT запрос
func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

// Insert начинает INSERT запрос
func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

// Update начинает UPDATE запрос
func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

// Delete начинает DELETE запрос
func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}
