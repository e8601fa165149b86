package csvio

import (
	"math/rand"
	"strconv"

	"eshop/internal/domain"

	"github.com/google/uuid"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

var couponHeader = []string{
	"id", "code", "type", "value", "minOrder", "startDate", "endDate",
	"usageLimit", "status", "applyScope", "selectedCategories", "description",
}

func ExportCoupons(coupons []domain.Coupon) []byte {
	rows := make([][]string, 0, len(coupons))
	for _, c := range coupons {
		rows = append(rows, []string{
			c.ID, c.Code, c.Type, formatFloat(c.Value), formatFloat(c.MinOrder),
			c.StartDate, c.EndDate, strconv.Itoa(c.UsageLimit), c.Status,
			c.ApplyScope, c.SelectedCategories, c.Description,
		})
	}
	return export(couponHeader, rows)
}

func ImportCoupons(data []byte) ([]domain.Coupon, error) {
	header, rows, err := parse(data)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Coupon, 0, len(rows))
	for _, row := range rows {
		c := domain.Coupon{
			ID:                 field(header, row, "id"),
			Code:               field(header, row, "code"),
			Type:               field(header, row, "type"),
			Value:              parseFloat(field(header, row, "value")),
			MinOrder:           parseFloat(field(header, row, "minOrder")),
			StartDate:          field(header, row, "startDate"),
			EndDate:            field(header, row, "endDate"),
			UsageLimit:         parseInt(field(header, row, "usageLimit")),
			Status:             field(header, row, "status"),
			ApplyScope:         field(header, row, "applyScope"),
			SelectedCategories: field(header, row, "selectedCategories"),
			Description:        field(header, row, "description"),
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Code == "" {
			c.Code = randomCode(8)
		}
		if c.Type == "" {
			c.Type = "percentage"
		}
		if c.UsageLimit < 1 {
			c.UsageLimit = 1
		}
		if c.Status == "" {
			c.Status = "Active"
		}
		if c.ApplyScope == "" {
			c.ApplyScope = "store"
		}
		out = append(out, c)
	}
	return out, nil
}
