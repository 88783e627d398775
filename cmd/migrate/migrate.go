// Command migrate copies a JSON ledger data file into the SQLite backend
// so a deployment can switch DATA_BACKEND without losing history. Both
// sides go through the shared store boundary, so the sqlite database ends
// up holding exactly the snapshot the JSON file described.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"rental-ledger/store"
)

func main() {
	from := flag.String("from", "", "JSON data file to read (default: DATA_FILE or data.json)")
	to := flag.String("to", "", "sqlite database to write (default: SQLITE_PATH or ledger.db)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, using environment variables from system")
	}

	src := pick(*from, "DATA_FILE", "data.json")
	dst := pick(*to, "SQLITE_PATH", "ledger.db")

	snap, err := store.NewJSONStore(src).Load()
	if err != nil {
		logrus.Fatal("failed to load ", src, ": ", err)
	}

	sqliteStore, err := store.NewSQLiteStore(dst)
	if err != nil {
		logrus.Fatal("failed to open ", dst, ": ", err)
	}
	if err := sqliteStore.Save(snap); err != nil {
		logrus.Fatal("failed to write ", dst, ": ", err)
	}

	logrus.WithFields(logrus.Fields{
		"users":    len(snap.Users),
		"vehicles": len(snap.Vehicles),
		"rentals":  len(snap.Rentals),
	}).Info("migration completed")
}

func pick(flagValue, envKey, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}
