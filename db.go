package crumbpack

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	// Registers the sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// Asset is a compiled font or image as stored in the cache.
type Asset struct {
	Name string
	Kind string
	// Header is the generated C header and Data the raw binary form.
	Header []byte
	Data   []byte
	// Bytes is the size of the packed bitmap data.
	Bytes int
}

// AssetDB caches compiled assets keyed by a hash of their source and
// options.
type AssetDB struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewAssetDB opens, and creates if necessary, the cache in file.
func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, name TEXT NOT NULL, kind TEXT NOT NULL, header BLOB NOT NULL, data BLOB NOT NULL, bytes INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db:  db,
		enc: enc,
		dec: dec,
	}, nil
}

// Close closes the cache.
func (db *AssetDB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

// FindAsset returns the cached asset for sha, or nil if there isn't one.
func (db *AssetDB) FindAsset(sha string) (*Asset, error) {
	var header, data []byte
	a := new(Asset)
	switch err := db.db.QueryRow("SELECT name, kind, header, data, bytes FROM asset WHERE sha1 = ?", sha).Scan(&a.Name, &a.Kind, &header, &data, &a.Bytes); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	var err error
	if a.Header, err = db.dec.DecodeAll(header, nil); err != nil {
		return nil, err
	}
	if a.Data, err = db.dec.DecodeAll(data, nil); err != nil {
		return nil, err
	}

	return a, nil
}

// AddAsset stores a under sha, replacing anything already there.
func (db *AssetDB) AddAsset(sha string, a *Asset) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO asset (sha1, name, kind, header, data, bytes) VALUES (?, ?, ?, ?, ?, ?)", sha, a.Name, a.Kind, db.enc.EncodeAll(a.Header, nil), db.enc.EncodeAll(a.Data, nil), a.Bytes); err != nil {
		return err
	}
	return nil
}

// ListAssets returns the name, kind and size of every cached asset. Header
// and Data are not populated.
func (db *AssetDB) ListAssets() ([]Asset, error) {
	rows, err := db.db.Query("SELECT name, kind, bytes FROM asset ORDER BY kind, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.Name, &a.Kind, &a.Bytes); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Purge removes every cached asset and returns how many there were.
func (db *AssetDB) Purge() (int64, error) {
	result, err := db.db.Exec("DELETE FROM asset")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
