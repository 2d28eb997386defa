package repositories

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func stdDB(t *testing.T, db *gorm.DB) *sql.DB {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err, "get std db")
	return sqlDB
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createMerchantVerificationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchant_verifications (
		merchant_id TEXT PRIMARY KEY,
		status TEXT NOT NULL DEFAULT 'pending',
		business_name TEXT NOT NULL,
		contact_person_name TEXT NOT NULL,
		contact_phone TEXT NOT NULL,
		email TEXT NOT NULL,
		bank_account_number TEXT,
		ifsc_code TEXT,
		routing_number TEXT,
		gstin_or_tax_id TEXT,
		business_address TEXT,
		website TEXT,
		instagram TEXT,
		id_proof_file_ref TEXT,
		check_email_domain TEXT NOT NULL DEFAULT 'pending',
		check_phone_otp TEXT NOT NULL DEFAULT 'pending',
		check_penny_drop TEXT NOT NULL DEFAULT 'pending',
		check_id_file_uploaded TEXT NOT NULL DEFAULT 'pending',
		check_blacklist TEXT NOT NULL DEFAULT 'pending',
		trust_score INTEGER NOT NULL DEFAULT 0,
		reviewed_by TEXT,
		rejection_reason TEXT,
		reviewed_at DATETIME,
		submitted_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createBlacklistTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE blacklist_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		value TEXT NOT NULL,
		reason TEXT NOT NULL,
		added_at DATETIME NOT NULL
	);`)
}
