package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbokatech/hall-management-backend/internal/apperror"
	"github.com/mbokatech/hall-management-backend/internal/auditlog"
	"gorm.io/gorm"
)

// Service holds pricing CRUD, all scoped by hallID. Hall ownership is the
// caller's (route guard's) responsibility, not this service's.
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// ===========================
// 📦 Products

func (s *Service) CreateProduct(ctx context.Context, hallID uint, req *CreateProductRequest, actorID *string, ip string) (*ProductResponse, error) {
	product := &HallProduct{
		HallID:   hallID,
		Name:     req.Name,
		Category: req.Category,
		IsActive: true,
	}
	if req.IsPrimary != nil {
		product.IsPrimary = *req.IsPrimary
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.Repo.CreateProduct(product); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "PRODUCT_CREATED", map[string]interface{}{
		"product_id": product.ID, "name": product.Name,
	}, ip)

	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *Service) UpdateProduct(ctx context.Context, hallID, productID uint, req *UpdateProductRequest, actorID *string, ip string) (*ProductResponse, error) {
	product, err := s.Repo.FindProduct(hallID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.IsPrimary != nil {
		product.IsPrimary = *req.IsPrimary
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.Repo.UpdateProduct(product); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "PRODUCT_UPDATED", map[string]interface{}{
		"product_id": product.ID,
	}, ip)

	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *Service) GetProduct(hallID, productID uint) (*ProductResponse, error) {
	product, err := s.Repo.FindProduct(hallID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *Service) ListProducts(hallID uint) ([]ProductResponse, error) {
	products, err := s.Repo.ListProducts(hallID, false)
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out, nil
}

// ListActiveProducts feeds the public read model; inactive products stay out.
func (s *Service) ListActiveProducts(hallID uint) ([]ProductResponse, error) {
	products, err := s.Repo.ListProducts(hallID, true)
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out, nil
}

func (s *Service) DeleteProduct(ctx context.Context, hallID, productID uint, actorID *string, ip string) error {
	if _, err := s.GetProduct(hallID, productID); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(hallID, productID); err != nil {
		return err
	}
	s.audit(ctx, actorID, &hallID, "PRODUCT_DELETED", map[string]interface{}{
		"product_id": productID,
	}, ip)
	return nil
}

// ===========================
// 💰 Rates

func (s *Service) CreateRate(ctx context.Context, hallID, productID uint, req *CreateRateRequest, actorID *string, ip string) (*RateResponse, error) {
	if !validBillingUnit(req.BillingUnit) {
		return nil, apperror.Validation("invalid billing_unit: " + req.BillingUnit)
	}
	if req.Price <= 0 {
		return nil, apperror.Validation("price must be positive")
	}

	// product must belong to the hall
	if _, err := s.Repo.FindProduct(hallID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}

	rate := &HallProductRate{
		HallProductID: productID,
		Label:         req.Label,
		Currency:      req.Currency,
		Price:         floatToDecimal(req.Price),
		BillingUnit:   req.BillingUnit,
		StartHour:     req.StartHour,
		EndHour:       req.EndHour,
	}
	if req.IsDefault != nil {
		rate.IsDefault = *req.IsDefault
	}

	var err error
	if rate.SeasonStart, err = parseOptionalDate(req.SeasonStart); err != nil {
		return nil, err
	}
	if rate.SeasonEnd, err = parseOptionalDate(req.SeasonEnd); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateRate(rate); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "RATE_CREATED", map[string]interface{}{
		"product_id": productID, "rate_id": rate.ID, "price": req.Price, "currency": req.Currency,
	}, ip)

	resp := ToRateResponse(rate)
	return &resp, nil
}

func (s *Service) UpdateRate(ctx context.Context, hallID, productID, rateID uint, req *UpdateRateRequest, actorID *string, ip string) (*RateResponse, error) {
	if _, err := s.Repo.FindProduct(hallID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}

	rate, err := s.Repo.FindRate(productID, rateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("rate not found")
		}
		return nil, err
	}

	if req.Label != nil {
		rate.Label = *req.Label
	}
	if req.Currency != nil {
		rate.Currency = *req.Currency
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperror.Validation("price must be positive")
		}
		rate.Price = floatToDecimal(*req.Price)
	}
	if req.BillingUnit != nil {
		if !validBillingUnit(*req.BillingUnit) {
			return nil, apperror.Validation("invalid billing_unit: " + *req.BillingUnit)
		}
		rate.BillingUnit = *req.BillingUnit
	}
	if req.StartHour != nil {
		rate.StartHour = req.StartHour
	}
	if req.EndHour != nil {
		rate.EndHour = req.EndHour
	}
	if req.SeasonStart != nil {
		if rate.SeasonStart, err = parseOptionalDate(req.SeasonStart); err != nil {
			return nil, err
		}
	}
	if req.SeasonEnd != nil {
		if rate.SeasonEnd, err = parseOptionalDate(req.SeasonEnd); err != nil {
			return nil, err
		}
	}
	if req.IsDefault != nil {
		rate.IsDefault = *req.IsDefault
	}

	if err := s.Repo.UpdateRate(rate); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "RATE_UPDATED", map[string]interface{}{
		"product_id": productID, "rate_id": rate.ID,
	}, ip)

	resp := ToRateResponse(rate)
	return &resp, nil
}

func (s *Service) ListRates(hallID, productID uint) ([]RateResponse, error) {
	if _, err := s.Repo.FindProduct(hallID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}

	rates, err := s.Repo.ListRates(productID)
	if err != nil {
		return nil, err
	}
	out := make([]RateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, ToRateResponse(&rates[i]))
	}
	return out, nil
}

func (s *Service) DeleteRate(ctx context.Context, hallID, productID, rateID uint, actorID *string, ip string) error {
	if _, err := s.Repo.FindProduct(hallID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("product not found")
		}
		return err
	}
	if _, err := s.Repo.FindRate(productID, rateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("rate not found")
		}
		return err
	}
	if err := s.Repo.DeleteRate(productID, rateID); err != nil {
		return err
	}
	s.audit(ctx, actorID, &hallID, "RATE_DELETED", map[string]interface{}{
		"product_id": productID, "rate_id": rateID,
	}, ip)
	return nil
}

// ===========================
// ➕ Addons

func (s *Service) CreateAddon(ctx context.Context, hallID uint, req *CreateAddonRequest, actorID *string, ip string) (*AddonResponse, error) {
	if !validPricingModel(req.PricingModel) {
		return nil, apperror.Validation("invalid pricing_model: " + req.PricingModel)
	}

	addon := &HallAddon{
		HallID:       hallID,
		Name:         req.Name,
		Description:  req.Description,
		PricingModel: req.PricingModel,
		UnitPrice:    floatToDecimal(req.UnitPrice),
		Currency:     req.Currency,
		PackSize:     req.PackSize,
		IsActive:     true,
	}
	if req.RedevanceAmount != nil {
		amount := floatToDecimal(*req.RedevanceAmount)
		addon.RedevanceAmount = &amount
	}
	if req.IsActive != nil {
		addon.IsActive = *req.IsActive
	}

	if err := s.Repo.CreateAddon(addon); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "ADDON_CREATED", map[string]interface{}{
		"addon_id": addon.ID, "name": addon.Name,
	}, ip)

	resp := ToAddonResponse(addon)
	return &resp, nil
}

func (s *Service) UpdateAddon(ctx context.Context, hallID, addonID uint, req *UpdateAddonRequest, actorID *string, ip string) (*AddonResponse, error) {
	addon, err := s.Repo.FindAddon(hallID, addonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("addon not found")
		}
		return nil, err
	}

	if req.Name != nil {
		addon.Name = *req.Name
	}
	if req.Description != nil {
		addon.Description = *req.Description
	}
	if req.PricingModel != nil {
		if !validPricingModel(*req.PricingModel) {
			return nil, apperror.Validation("invalid pricing_model: " + *req.PricingModel)
		}
		addon.PricingModel = *req.PricingModel
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, apperror.Validation("unit_price must be positive")
		}
		addon.UnitPrice = floatToDecimal(*req.UnitPrice)
	}
	if req.Currency != nil {
		addon.Currency = *req.Currency
	}
	if req.PackSize != nil {
		addon.PackSize = req.PackSize
	}
	if req.RedevanceAmount != nil {
		amount := floatToDecimal(*req.RedevanceAmount)
		addon.RedevanceAmount = &amount
	}
	if req.IsActive != nil {
		addon.IsActive = *req.IsActive
	}

	if err := s.Repo.UpdateAddon(addon); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "ADDON_UPDATED", map[string]interface{}{
		"addon_id": addon.ID,
	}, ip)

	resp := ToAddonResponse(addon)
	return &resp, nil
}

func (s *Service) GetAddon(hallID, addonID uint) (*AddonResponse, error) {
	addon, err := s.Repo.FindAddon(hallID, addonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("addon not found")
		}
		return nil, err
	}
	resp := ToAddonResponse(addon)
	return &resp, nil
}

func (s *Service) ListAddons(hallID uint) ([]AddonResponse, error) {
	addons, err := s.Repo.ListAddons(hallID, false)
	if err != nil {
		return nil, err
	}
	out := make([]AddonResponse, 0, len(addons))
	for i := range addons {
		out = append(out, ToAddonResponse(&addons[i]))
	}
	return out, nil
}

// ListActiveAddons feeds the public read model; inactive addons stay out.
func (s *Service) ListActiveAddons(hallID uint) ([]AddonResponse, error) {
	addons, err := s.Repo.ListAddons(hallID, true)
	if err != nil {
		return nil, err
	}
	out := make([]AddonResponse, 0, len(addons))
	for i := range addons {
		out = append(out, ToAddonResponse(&addons[i]))
	}
	return out, nil
}

func (s *Service) DeleteAddon(ctx context.Context, hallID, addonID uint, actorID *string, ip string) error {
	if _, err := s.GetAddon(hallID, addonID); err != nil {
		return err
	}
	if err := s.Repo.DeleteAddon(hallID, addonID); err != nil {
		return err
	}
	s.audit(ctx, actorID, &hallID, "ADDON_DELETED", map[string]interface{}{
		"addon_id": addonID,
	}, ip)
	return nil
}

// ===========================
// 📅 Blocked dates

func (s *Service) CreateBlockedDate(ctx context.Context, hallID uint, req *CreateBlockedDateRequest, actorID *string, ip string) (*HallBlockedDate, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperror.Validation("invalid start_date format. Use YYYY-MM-DD")
	}

	block := &HallBlockedDate{
		HallID:    hallID,
		StartDate: start,
		Reason:    req.Reason,
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, apperror.Validation("invalid end_date format. Use YYYY-MM-DD")
		}
		if end.Before(start) {
			return nil, apperror.Validation("end_date must not precede start_date")
		}
		block.EndDate = &end
	}

	if err := s.Repo.CreateBlockedDate(block); err != nil {
		return nil, err
	}

	s.audit(ctx, actorID, &hallID, "BLOCKED_DATE_CREATED", map[string]interface{}{
		"block_id": block.ID, "start_date": req.StartDate,
	}, ip)

	return block, nil
}

func (s *Service) ListBlockedDates(hallID uint) ([]HallBlockedDate, error) {
	return s.Repo.ListBlockedDates(hallID)
}

func (s *Service) DeleteBlockedDate(ctx context.Context, hallID, blockID uint, actorID *string, ip string) error {
	if err := s.Repo.DeleteBlockedDate(hallID, blockID); err != nil {
		return err
	}
	s.audit(ctx, actorID, &hallID, "BLOCKED_DATE_DELETED", map[string]interface{}{
		"block_id": blockID,
	}, ip)
	return nil
}

// ===========================
// helpers

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, apperror.Validation("invalid date format. Use YYYY-MM-DD")
	}
	return &t, nil
}

func (s *Service) audit(ctx context.Context, userID *string, hallID *uint, action string, details map[string]interface{}, ip string) {
	if s.AuditSvc == nil {
		return
	}
	if err := s.AuditSvc.LogAction(ctx, userID, hallID, action, details, ip, "success"); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
