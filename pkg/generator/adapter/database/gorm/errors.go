package gorm

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Server error numbers that matter to the bulk loader.
const (
	ErrNumLoadDataLocalDisabled uint16 = 3948 // Loading local data is disabled
	ErrNumSecureFilePriv        uint16 = 1290 // --secure-file-priv prevents the statement
	ErrNumNoSuchTable           uint16 = 1146
)

func asMySQLError(err error, target **mysql.MySQLError) bool {
	return errors.As(err, target)
}

// IsSecureFilePrivError reports whether the server refused a file path because of secure_file_priv.
func IsSecureFilePrivError(err error) bool {
	var myErr *mysql.MySQLError
	return asMySQLError(err, &myErr) && myErr.Number == ErrNumSecureFilePriv
}

// IsLocalInfileDisabled reports whether err says the server refused a LOCAL load.
func IsLocalInfileDisabled(err error) bool {
	var myErr *mysql.MySQLError
	return asMySQLError(err, &myErr) && myErr.Number == ErrNumLoadDataLocalDisabled
}

// IsTableNotExistError reports whether err is a missing table error.
func IsTableNotExistError(err error) bool {
	var myErr *mysql.MySQLError
	return asMySQLError(err, &myErr) && myErr.Number == ErrNumNoSuchTable
}
