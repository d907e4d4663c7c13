// file: internals/features/loyalty/segmentation/controller/segmentation_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tokoku_backend/internals/features/loyalty/segmentation/dto"
	segment "tokoku_backend/internals/features/loyalty/segmentation/model"
	"tokoku_backend/internals/features/loyalty/segmentation/service"
	helper "tokoku_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type SegmentationController struct {
	DB *gorm.DB
}

var validate = validator.New()

// =======================================================
// HELPERS
// =======================================================

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// getOrCreateProfile: profil dibuat lazily saat pertama diakses.
// Profil baru langsung di-skor + diklasifikasi supaya tidak pernah ada
// row dengan segmen kosong.
func getOrCreateProfile(tx *gorm.DB, userID uuid.UUID) (*segment.CustomerSegmentProfile, error) {
	var p segment.CustomerSegmentProfile
	err := tx.Where("segment_profile_user_id = ?", userID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = segment.CustomerSegmentProfile{SegmentProfileUserID: userID}
	service.CalculateRFM(&p)
	service.Classify(&p)
	if err := tx.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// =======================================================
// USER — profil milik sendiri
// =======================================================

// GET /api/u/loyalty/segment-profile
func (ctl *SegmentationController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var out dto.SegmentProfileResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		p, err := getOrCreateProfile(tx, userID)
		if err != nil {
			return err
		}
		out = dto.ToSegmentProfileResponse(*p)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Profil segmentasi berhasil diambil", out)
}

// =======================================================
// ADMIN
// =======================================================

// GET /api/a/loyalty/segment-profiles/:user_id
func (ctl *SegmentationController) GetByUser(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	var p segment.CustomerSegmentProfile
	if err := ctl.DB.Where("segment_profile_user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Profil segmentasi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.Success(c, "Profil segmentasi berhasil diambil", dto.ToSegmentProfileResponse(p))
}

// POST /api/a/loyalty/segment-profiles/:user_id/recalculate
// Refresh recency dari last_purchase_at, lalu skor + klasifikasi ulang.
// Catatan: setiap run menambah satu entri riwayat, walau segmen sama.
func (ctl *SegmentationController) Recalculate(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "user_id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	var out dto.SegmentProfileResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var p segment.CustomerSegmentProfile
		if err := tx.Where("segment_profile_user_id = ?", userID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Profil segmentasi tidak ditemukan")
			}
			return err
		}

		service.RefreshRecency(&p, time.Now())
		service.UpdateSegmentation(&p, nil)

		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		out = dto.ToSegmentProfileResponse(p)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Segmentasi berhasil dihitung ulang", out)
}

// GET /api/a/loyalty/segment-profiles?segment=champion
func (ctl *SegmentationController) ListBySegment(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "updated_at", "desc", helper.AdminOpts)

	q := ctl.DB.Model(&segment.CustomerSegmentProfile{})
	if seg := strings.TrimSpace(c.Query("segment")); seg != "" {
		q = q.Where("segment_profile_primary_segment = ?", seg)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	allowedSort := map[string]string{
		"updated_at":     "segment_profile_updated_at",
		"combined_score": "segment_profile_combined_score",
		"total_spent":    "segment_profile_total_spent",
	}
	orderClause, err := p.SafeOrderClause(allowedSort, "updated_at")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "sort_by tidak valid")
	}

	var rows []segment.CustomerSegmentProfile
	if err := q.Order(strings.TrimPrefix(orderClause, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.SuccessList(c, "Daftar profil segmentasi berhasil diambil",
		dto.ToSegmentProfileResponses(rows), helper.BuildMeta(total, p))
}

// =======================================================
// INTERNAL — hook order completed
// =======================================================

// POST /api/internal/loyalty/order-completed
func (ctl *SegmentationController) OrderCompleted(c *fiber.Ctx) error {
	var req dto.OrderCompletedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	ev := &service.OrderEvent{
		OrderID: req.OrderID,
		Amount:  req.Amount,
	}
	if req.CompletedAt != nil {
		ev.CompletedAt = *req.CompletedAt
	}

	var out dto.SegmentProfileResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		p, err := getOrCreateProfile(tx, req.UserID)
		if err != nil {
			return err
		}

		service.UpdateSegmentation(p, ev)

		if err := tx.Save(p).Error; err != nil {
			return err
		}
		out = dto.ToSegmentProfileResponse(*p)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Segmentasi pelanggan berhasil diperbarui", out)
}
