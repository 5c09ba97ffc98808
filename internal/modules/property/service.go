package property

import (
	"context"
	"errors"

	"kbtassist/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	properties PropertyRepository
	users      UserReader
	inventory  InventoryRepository
}

func NewService(properties PropertyRepository, users UserReader, inventory InventoryRepository) *Service {
	return &Service{properties: properties, users: users, inventory: inventory}
}

func (s *Service) CreateProperty(ctx context.Context, actor domain.Principal, req CreatePropertyRequest) (*domain.Property, error) {
	if !domain.IsManagerRole(actor.Role) {
		return nil, ErrForbidden
	}

	landlordID := req.LandlordID
	if actor.Role == domain.RoleLandlord && landlordID == 0 {
		landlordID = actor.UserID
	}

	p := &domain.Property{
		Name:       req.Name,
		Address:    req.Address,
		Postcode:   req.Postcode,
		RentAmount: req.RentAmount,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		LandlordID: landlordID,
		AddedByID:  actor.UserID,
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetProperty(ctx context.Context, actor domain.Principal, propertyID int64) (*domain.Property, error) {
	p, tenantIDs, err := s.loadWithTenancy(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, p, tenantIDs) {
		return nil, ErrForbidden
	}

	tenants, err := s.properties.ListTenants(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	p.Tenants = tenants
	return p, nil
}

func (s *Service) UpdateProperty(ctx context.Context, actor domain.Principal, propertyID int64, req UpdatePropertyRequest) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !domain.CanManageProperty(actor, p) {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Postcode != nil {
		p.Postcode = *req.Postcode
	}
	if req.RentAmount != nil {
		p.RentAmount = *req.RentAmount
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}

	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListProperties(ctx context.Context, actor domain.Principal) ([]domain.Property, error) {
	return s.properties.ListForUser(ctx, actor.UserID)
}

// AddTenant links a tenant-role user to a property. Only a manager of the
// property may do it, and the same tenant cannot be linked twice.
func (s *Service) AddTenant(ctx context.Context, actor domain.Principal, propertyID int64, tenantID int64) error {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !domain.CanManageProperty(actor, p) {
		return ErrForbidden
	}

	u, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrValidation
		}
		return err
	}
	if u.Role != domain.RoleTenant {
		return ErrNotATenant
	}

	if err := s.properties.AddTenant(ctx, propertyID, tenantID); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyTenant
		}
		return err
	}
	return nil
}

func (s *Service) CreateInventoryItem(ctx context.Context, actor domain.Principal, propertyID int64, req CreateInventoryItemRequest) (*domain.InventoryItem, error) {
	p, tenantIDs, err := s.loadWithTenancy(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, p, tenantIDs) {
		return nil, ErrForbidden
	}

	item := &domain.InventoryItem{
		PropertyID: propertyID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		Unit:       req.Unit,
		Location:   req.Location,
		AddedByID:  actor.UserID,
	}
	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListInventory(ctx context.Context, actor domain.Principal, propertyID int64) ([]domain.InventoryItem, error) {
	p, tenantIDs, err := s.loadWithTenancy(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, p, tenantIDs) {
		return nil, ErrForbidden
	}
	return s.inventory.ListByProperty(ctx, propertyID)
}

func (s *Service) UpdateInventoryItem(ctx context.Context, actor domain.Principal, itemID int64, req UpdateInventoryItemRequest) (*domain.InventoryItem, error) {
	item, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p, tenantIDs, err := s.loadWithTenancy(ctx, item.PropertyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessProperty(actor, p, tenantIDs) {
		return nil, ErrForbidden
	}

	item.Name = req.Name
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.Location = req.Location
	if err := s.inventory.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteInventoryItem(ctx context.Context, actor domain.Principal, itemID int64) error {
	item, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	p, err := s.properties.GetByID(ctx, item.PropertyID)
	if err != nil {
		return err
	}
	if !domain.CanManageProperty(actor, p) {
		return ErrForbidden
	}
	return s.inventory.Delete(ctx, itemID)
}

func (s *Service) loadWithTenancy(ctx context.Context, propertyID int64) (*domain.Property, []int64, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	tenantIDs, err := s.properties.TenantIDs(ctx, propertyID)
	if err != nil {
		return nil, nil, err
	}
	return p, tenantIDs, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
