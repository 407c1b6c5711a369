//go:build sqlite_glebarez

package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func GetDialect(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}

func DSN(path string) string {
	return path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}
