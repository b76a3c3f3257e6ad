// Package dbx holds small helpers over gorm errors shared by the repositories.
package dbx

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// IsDuplicateKey reports a unique-constraint violation, either raw from MySQL
// or translated by gorm (TranslateError).
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound is gorm.ErrRecordNotFound anywhere in the chain.
func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
