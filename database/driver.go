//go:build !sqlite_glebarez

package database

import (
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
)

func GetDialect(dsn string) gorm.Dialector {
	return gormlite.Open(dsn)
}

// DSN enables WAL and a busy timeout so concurrent writers wait instead of failing.
func DSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}
