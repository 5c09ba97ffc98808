package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kbtassist/internal/database"
	"kbtassist/internal/domain"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	// Named in-memory database so each test gets its own isolated schema.
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func TestRentPaymentRepository_CreateIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	invoices := NewInvoiceRepository(db)
	payments := NewRentPaymentRepository(db)

	inv := &domain.Invoice{
		PropertyID: 10,
		TenantID:   7,
		Amount:     950,
		DueDate:    time.Now().AddDate(0, 0, 7),
		Status:     domain.InvoicePending,
	}
	if err := invoices.Create(ctx, inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	payment := func() *domain.RentPayment {
		return &domain.RentPayment{
			InvoiceID:     inv.ID,
			TenantID:      7,
			PropertyID:    10,
			Amount:        950,
			PaymentDate:   time.Now(),
			PaymentMethod: "card",
		}
	}

	recorded, err := payments.CreateIdempotent(ctx, payment())
	assert.NoError(t, err)
	assert.True(t, recorded)

	// Redelivered confirmation must not write a second row.
	recorded, err = payments.CreateIdempotent(ctx, payment())
	assert.NoError(t, err)
	assert.False(t, recorded)

	var count int64
	db.Model(&domain.RentPayment{}).Where("invoice_id = ?", inv.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	got, err := invoices.GetByID(ctx, inv.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, got.Status)
}

func TestRentPaymentRepository_CreateIdempotent_UnknownInvoice(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	payments := NewRentPaymentRepository(db)

	recorded, err := payments.CreateIdempotent(ctx, &domain.RentPayment{
		InvoiceID: 404, TenantID: 7, PropertyID: 10, Amount: 950,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.False(t, recorded)
}
