package store

import (
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"
	"gorm.io/gorm/clause"

	"github.com/djpatra/krwallet/internal/wallet"
	"github.com/djpatra/krwallet/pkg/conn"
	"github.com/djpatra/krwallet/pkg/exception"
)

// SnapshotRow is the persisted form of one wallet snapshot.
type SnapshotRow struct {
	ClientID  uint16          `gorm:"column:client_id;primaryKey"`
	Available decimal.Decimal `gorm:"column:available;type:numeric(20,4)"`
	Held      decimal.Decimal `gorm:"column:held;type:numeric(20,4)"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(20,4)"`
	Locked    bool            `gorm:"column:locked"`
}

// TableName implements the gorm naming hook.
func (SnapshotRow) TableName() string {
	return "wallet_snapshots"
}

// Store upserts final wallet snapshots into PostgreSQL. It persists
// only the output report of a run, never engine state.
type Store struct {
	client *conn.Client
}

// New migrates the snapshot table and returns a store.
func New(client *conn.Client) (*Store, error) {
	if err := client.DB().AutoMigrate(&SnapshotRow{}); err != nil {
		return nil, errors.Wrap(err, "migrate wallet_snapshots")
	}
	return &Store{client: client}, nil
}

// Write upserts one snapshot row keyed by client id.
func (s *Store) Write(snap wallet.Snapshot) error {
	row := SnapshotRow{
		ClientID:  snap.Client,
		Available: snap.Available,
		Held:      snap.Held,
		Total:     snap.Total,
		Locked:    snap.Locked,
	}

	err := s.client.DB().
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return errors.Wrap(exception.ErrSinkWrite, err.Error()).With("client", snap.Client)
	}
	return nil
}

// Flush is a no-op; every Write commits on its own.
func (s *Store) Flush() error {
	return nil
}
