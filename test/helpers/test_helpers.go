package helpers

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
	"github.com/syndicma/syndic-api/pkg/pg"
	"github.com/syndicma/syndic-api/pkg/redis"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.ResidenceEntity{},
		&repository.ClientEntity{},
		&repository.ChargeEntity{},
		&repository.InvoiceEntity{},
		&repository.PaymentEntity{},
		&repository.NotificationEntity{},
		&repository.UserEntity{},
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

	return pgDB
}

func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Unique connection name per call: the adapter registry caches by name.
	connName := fmt.Sprintf("test-%s-%d", t.Name(), time.Now().UnixNano())
	adapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func CreateTestResidence(t *testing.T, db *pg.DB, name string) *model.Residence {
	t.Helper()
	repo := repository.NewResidenceRepository(db)
	res, err := repo.Create(context.Background(), &model.Residence{
		Name:          name,
		Address:       "12 Rue des Orangers, Casablanca",
		NumApartments: 24,
		Contact:       "0522-000000",
	})
	require.NoError(t, err)
	return res
}

func CreateTestClient(t *testing.T, db *pg.DB, residenceID int64, name string, balance float64) *model.Client {
	t.Helper()
	repo := repository.NewClientRepository(db)
	c, err := repo.Create(context.Background(), &model.Client{
		Name:          name,
		Balance:       balance,
		PaymentStatus: model.StatusUnpaid,
		ResidenceID:   residenceID,
	})
	require.NoError(t, err)
	return c
}

func CreateTestInvoice(t *testing.T, db *pg.DB, clientID int64, month, year int, amount float64, status model.PaymentStatus) *model.Invoice {
	t.Helper()
	repo := repository.NewInvoiceRepository(db)
	inv, _, err := repo.Upsert(context.Background(), &model.Invoice{
		ClientID: clientID,
		Month:    month,
		Year:     year,
		Amount:   amount,
		Status:   status,
	})
	require.NoError(t, err)
	return inv
}

func CreateTestCharge(t *testing.T, db *pg.DB, residenceID int64, date time.Time, amount float64) *model.Charge {
	t.Helper()
	repo := repository.NewChargeRepository(db)
	c, err := repo.Create(context.Background(), &model.Charge{
		Date:        date,
		Description: "Entretien ascenseur",
		Amount:      amount,
		ResidenceID: &residenceID,
	})
	require.NoError(t, err)
	return c
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func AssertEventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	if !WaitForCondition(t, timeout, condition) {
		t.Fatal(msg)
	}
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func Ptr[T any](v T) *T {
	return &v
}
