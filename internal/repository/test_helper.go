package repository

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/pkg/pg"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB struct {
	*pg.DB
	rawDB *gorm.DB
}

func setupTestDB(t *testing.T) *testDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&ResidenceEntity{},
		&ClientEntity{},
		&ChargeEntity{},
		&InvoiceEntity{},
		&PaymentEntity{},
		&NotificationEntity{},
		&UserEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return &testDB{
		DB:    pgDB,
		rawDB: db,
	}
}

func seedResidence(t *testing.T, db *pg.DB) int64 {
	t.Helper()
	repo := NewResidenceRepository(db)
	res, err := repo.Create(context.Background(), &model.Residence{
		Name:          "Résidence Al Amane",
		Address:       "12 Rue des Orangers, Casablanca",
		NumApartments: 24,
		Contact:       "0522-000000",
	})
	require.NoError(t, err)
	return res.ID
}

func seedClient(t *testing.T, db *pg.DB, residenceID int64) int64 {
	t.Helper()
	repo := NewClientRepository(db)
	c, err := repo.Create(context.Background(), &model.Client{
		Name:          "Ahmed Benali",
		Balance:       1500,
		PaymentStatus: model.StatusUnpaid,
		ResidenceID:   residenceID,
	})
	require.NoError(t, err)
	return c.ID
}
