package repository

import (
	"context"
	"testing"
	"time"

	"kbtassist/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNoticeRepository_ListForUser_CoversTenancy(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	properties := NewPropertyRepository(db)
	notices := NewNoticeRepository(db)

	prop := &domain.Property{
		Name:       "Flat 2, Maple Court",
		Address:    "12 Maple Court, Leeds",
		Postcode:   "LS1 4AB",
		LandlordID: 3,
		AddedByID:  2,
	}
	if err := properties.Create(ctx, prop); err != nil {
		t.Fatalf("create property: %v", err)
	}
	if err := properties.AddTenant(ctx, prop.ID, 7); err != nil {
		t.Fatalf("add tenant: %v", err)
	}

	// Addressed to the landlord, so the tenant is neither issuer nor
	// recipient; only the tenancy association makes it visible to them.
	err := notices.Create(ctx, &domain.Notice{
		PropertyID: prop.ID,
		IssuedByID: 2,
		IssuedToID: 3,
		Title:      "Inspection due",
		Content:    "Annual gas safety inspection on the 14th.",
		NoticeType: "inspection",
		IssuedDate: time.Now(),
		Status:     domain.NoticeSent,
	})
	assert.NoError(t, err)

	tenantView, err := notices.ListForUser(ctx, 7)
	assert.NoError(t, err)
	assert.Len(t, tenantView, 1)

	managerView, err := notices.ListForUser(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, managerView, 1)

	strangerView, err := notices.ListForUser(ctx, 99)
	assert.NoError(t, err)
	assert.Empty(t, strangerView)
}
