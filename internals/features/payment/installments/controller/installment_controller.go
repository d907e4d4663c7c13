// file: internals/features/payment/installments/controller/installment_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"tokoku_backend/internals/features/payment/installments/dto"
	installment "tokoku_backend/internals/features/payment/installments/model"
	"tokoku_backend/internals/features/payment/installments/service"
	helper "tokoku_backend/internals/helpers"
)

// =======================================================
// BOOTSTRAP
// =======================================================

type InstallmentController struct {
	DB *gorm.DB
}

var validate = validator.New()

// =======================================================
// HELPERS
// =======================================================

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func parseIntParam(c *fiber.Ctx, name string) (int, error) {
	return strconv.Atoi(c.Params(name))
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

func loadPlanWithRows(tx *gorm.DB, planID uuid.UUID) (*installment.InstallmentPlan, []installment.Installment, error) {
	var plan installment.InstallmentPlan
	if err := tx.First(&plan, "installment_plan_id = ?", planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "Plan cicilan tidak ditemukan")
		}
		return nil, nil, err
	}

	var rows []installment.Installment
	if err := tx.Where("installment_plan_id = ?", planID).
		Order("installment_number ASC").
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	return &plan, rows, nil
}

// =======================================================
// USER
// =======================================================

// POST /api/u/installments
// Membuat plan cicilan untuk satu order; schedule dimaterialisasi penuh.
// BNPL memakai limit dari aplikasi kredit milik user.
func (ctl *InstallmentController) CreatePlan(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.InstallmentPlanCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.PlanType == string(installment.PlanTypeBNPL) && req.CreditApplicationID == nil {
		return helper.Error(c, fiber.StatusBadRequest, "Plan BNPL butuh credit_application_id")
	}

	now := time.Now()
	sched, err := service.ComputeInstallmentSchedule(
		req.TotalAmount, req.DownPaymentPercent, req.InterestRatePercent, req.NumberOfInstallments, now)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var out dto.InstallmentPlanResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		plan := installment.InstallmentPlan{
			InstallmentPlanUserID:               userID,
			InstallmentPlanOrderID:              req.OrderID,
			InstallmentPlanType:                 installment.InstallmentPlanType(req.PlanType),
			InstallmentPlanTotalAmount:          req.TotalAmount,
			InstallmentPlanDownPaymentPercent:   req.DownPaymentPercent,
			InstallmentPlanDownPaymentAmount:    sched.DownPaymentAmount,
			InstallmentPlanRemainingAmount:      sched.RemainingAmount,
			InstallmentPlanInterestRatePercent:  req.InterestRatePercent,
			InstallmentPlanNumberOfInstallments: req.NumberOfInstallments,
			InstallmentPlanTotalInterest:        sched.TotalInterest,
			InstallmentPlanTotalPayable:         sched.TotalPayable,
			InstallmentPlanInstallmentAmount:    sched.InstallmentAmount,
			InstallmentPlanStatus:               installment.PlanStatusActive,
		}

		// BNPL: pakai limit kredit dulu, baru plan dibuat
		if req.PlanType == string(installment.PlanTypeBNPL) {
			var app installment.CreditApplication
			if err := tx.First(&app, "credit_application_id = ? AND credit_application_user_id = ?",
				*req.CreditApplicationID, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Aplikasi kredit tidak ditemukan")
				}
				return err
			}
			if err := service.ConsumeCreditLimit(&app, sched.RemainingAmount); err != nil {
				return err
			}
			if err := tx.Save(&app).Error; err != nil {
				return err
			}
			plan.InstallmentPlanCreditApplicationID = &app.CreditApplicationID
		}

		if err := tx.Create(&plan).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "Order ini sudah punya plan cicilan")
			}
			return err
		}

		rows := sched.Rows
		for i := range rows {
			rows[i].InstallmentPlanID = plan.InstallmentPlanID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}

		out = dto.ToInstallmentPlanResponse(plan, rows)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Plan cicilan berhasil dibuat", out)
}

// POST /api/u/installments/preview
// Hitung schedule tanpa menyimpan apa pun.
func (ctl *InstallmentController) PreviewSchedule(c *fiber.Ctx) error {
	var req dto.SchedulePreviewDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sched, err := service.ComputeInstallmentSchedule(
		req.TotalAmount, req.DownPaymentPercent, req.InterestRatePercent, req.NumberOfInstallments, time.Now())
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Preview schedule berhasil dihitung", dto.SchedulePreviewResponse{
		DownPaymentAmount: sched.DownPaymentAmount,
		RemainingAmount:   sched.RemainingAmount,
		TotalInterest:     sched.TotalInterest,
		TotalPayable:      sched.TotalPayable,
		InstallmentAmount: sched.InstallmentAmount,
		Schedule:          dto.ToInstallmentResponses(sched.Rows),
	})
}

// GET /api/u/installments
func (ctl *InstallmentController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctl.DB.Model(&installment.InstallmentPlan{}).
		Where("installment_plan_user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var plans []installment.InstallmentPlan
	if err := q.Order("installment_plan_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&plans).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.InstallmentPlanResponse, 0, len(plans))
	for _, pl := range plans {
		out = append(out, dto.ToInstallmentPlanResponse(pl, nil))
	}
	return helper.SuccessList(c, "Daftar plan cicilan berhasil diambil", out, helper.BuildMeta(total, p))
}

// GET /api/u/installments/:id
func (ctl *InstallmentController) GetDetail(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	planID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	plan, rows, err := loadPlanWithRows(ctl.DB, planID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if plan.InstallmentPlanUserID != userID {
		return helper.Error(c, fiber.StatusForbidden, "Plan ini bukan milik Anda")
	}

	return helper.Success(c, "Detail plan cicilan berhasil diambil", dto.ToInstallmentPlanResponse(*plan, rows))
}

// POST /api/u/installments/:id/installments/:number/token
// Minta Snap token Midtrans untuk membayar satu baris cicilan.
func (ctl *InstallmentController) RequestSnapToken(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	planID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}
	number, err := parseIntParam(c, "number")
	if err != nil || number < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Nomor cicilan tidak valid")
	}

	var out dto.SnapTokenResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		plan, rows, err := loadPlanWithRows(tx, planID)
		if err != nil {
			return err
		}
		if plan.InstallmentPlanUserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "Plan ini bukan milik Anda")
		}

		var target *installment.Installment
		for i := range rows {
			if rows[i].InstallmentNumber == number {
				target = &rows[i]
				break
			}
		}
		if target == nil {
			return fiber.NewError(fiber.StatusNotFound, "Cicilan tidak ditemukan")
		}
		if target.InstallmentStatus == installment.InstallmentStatusPaid {
			return fiber.NewError(fiber.StatusConflict, "Cicilan sudah dibayar")
		}

		name, _ := c.Locals("user_name").(string)
		email, _ := c.Locals("user_email").(string)

		token, err := service.GenerateInstallmentSnapToken(*plan, *target, name, email)
		if err != nil {
			return err
		}

		target.InstallmentSnapToken = &token
		if err := tx.Save(target).Error; err != nil {
			return err
		}

		out = dto.SnapTokenResponse{
			OrderID:   service.InstallmentOrderID(plan.InstallmentPlanID, number),
			SnapToken: token,
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Snap token berhasil dibuat", out)
}

// POST /api/u/installments/:id/installments/:number/pay
// Path manual (testing / pembayaran offline) — webhook Midtrans memakai
// jalur yang sama lewat service.ApplyInstallmentPayment.
func (ctl *InstallmentController) PayInstallment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	planID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}
	number, err := parseIntParam(c, "number")
	if err != nil || number < 1 {
		return helper.Error(c, fiber.StatusBadRequest, "Nomor cicilan tidak valid")
	}

	var req dto.PayInstallmentDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var out dto.InstallmentPlanResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		plan, rows, err := loadPlanWithRows(tx, planID)
		if err != nil {
			return err
		}
		if plan.InstallmentPlanUserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "Plan ini bukan milik Anda")
		}

		paid, completed, err := service.ApplyInstallmentPayment(plan, rows, number, req.TransactionID, time.Now())
		if err != nil {
			return err
		}

		if err := tx.Save(paid).Error; err != nil {
			return err
		}
		if err := tx.Save(plan).Error; err != nil {
			return err
		}

		if completed && plan.InstallmentPlanType == installment.PlanTypeBNPL && plan.InstallmentPlanCreditApplicationID != nil {
			var app installment.CreditApplication
			if err := tx.First(&app, "credit_application_id = ?", *plan.InstallmentPlanCreditApplicationID).Error; err != nil {
				return err
			}
			service.RestoreCreditLimit(&app, plan.InstallmentPlanRemainingAmount)
			if err := tx.Save(&app).Error; err != nil {
				return err
			}
		}

		out = dto.ToInstallmentPlanResponse(*plan, rows)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Cicilan berhasil dibayar", out)
}

// =======================================================
// ADMIN
// =======================================================

// POST /api/a/installments/:id/cancel
func (ctl *InstallmentController) Cancel(c *fiber.Ctx) error {
	planID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id tidak valid")
	}

	var out dto.InstallmentPlanResponse
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		plan, rows, err := loadPlanWithRows(tx, planID)
		if err != nil {
			return err
		}
		if err := service.CancelPlan(plan, rows); err != nil {
			return err
		}
		if err := tx.Save(plan).Error; err != nil {
			return err
		}
		for i := range rows {
			if err := tx.Save(&rows[i]).Error; err != nil {
				return err
			}
		}
		out = dto.ToInstallmentPlanResponse(*plan, rows)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Plan cicilan dibatalkan", out)
}

// POST /api/a/installments/overdue-sweep
// Loop sinkron atas plan aktif: tandai baris lewat jatuh tempo.
func (ctl *InstallmentController) OverdueSweep(c *fiber.Ctx) error {
	var req dto.OverdueSweepDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Body request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	now := time.Now()
	total := 0
	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var plans []installment.InstallmentPlan
		if err := tx.Where("installment_plan_status = ?", installment.PlanStatusActive).Find(&plans).Error; err != nil {
			return err
		}

		for _, plan := range plans {
			var rows []installment.Installment
			if err := tx.Where("installment_plan_id = ?", plan.InstallmentPlanID).Find(&rows).Error; err != nil {
				return err
			}
			if n := service.MarkOverdueRows(rows, now, req.LateFeePercent); n > 0 {
				for i := range rows {
					if err := tx.Save(&rows[i]).Error; err != nil {
						return err
					}
				}
				total += n
			}
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Sweep jatuh tempo selesai", fiber.Map{"marked_overdue": total})
}

// =======================================================
// WEBHOOK — Midtrans
// =======================================================

// POST /api/public/payments/midtrans/webhook
func (ctl *InstallmentController) MidtransWebhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload webhook tidak valid")
	}

	if err := service.HandleInstallmentStatusWebhook(ctl.DB, body); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Webhook diproses", nil)
}
