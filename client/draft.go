package client

import (
	"time"

	"github.com/matthews-code/yummybitest3/apperrors"
	orderControllers "github.com/matthews-code/yummybitest3/controllers/order"
	"github.com/matthews-code/yummybitest3/models"
)

// Wizard steps of the order-creation flow. Each step gates the next behind
// its own validation.
const (
	StepDate = iota + 1
	StepCustomer
	StepLines
	StepConfirm
)

type DraftLine struct {
	ItemUID    string
	Quantity   int
	Multiplier int
}

// OrderDraft is the client-held value of a not-yet-committed order. The
// server still validates everything on submit; this only front-loads the
// checks so the wizard can refuse bad steps immediately.
type OrderDraft struct {
	Date         *time.Time
	CustomerUID  string
	PaymentMode  models.PaymentMode
	DeliveryMode models.DeliveryMode
	Note         string
	Lines        []DraftLine

	step int
}

func NewOrderDraft() *OrderDraft {
	return &OrderDraft{
		PaymentMode:  models.PaymentCash,
		DeliveryMode: models.DeliveryPickup,
		step:         StepDate,
	}
}

func (d *OrderDraft) Step() int { return d.step }

// Next validates the current step and advances past it.
func (d *OrderDraft) Next() error {
	if err := d.validateStep(d.step); err != nil {
		return err
	}
	if d.step < StepConfirm {
		d.step++
	}
	return nil
}

// Back returns to the previous step without losing entered values.
func (d *OrderDraft) Back() {
	if d.step > StepDate {
		d.step--
	}
}

func (d *OrderDraft) validateStep(step int) error {
	switch step {
	case StepDate:
		if d.Date == nil {
			return apperrors.Validation("pick a date first")
		}
	case StepCustomer:
		if d.CustomerUID == "" {
			return apperrors.Validation("pick a customer first")
		}
	case StepLines:
		if len(d.Lines) == 0 {
			return apperrors.Validation("add at least one item")
		}
	}
	return nil
}

// AddLine stages one item line. Duplicate items are refused here so the
// per-order uniqueness invariant never reaches the server broken.
func (d *OrderDraft) AddLine(itemUID string, quantity, multiplier int) error {
	if itemUID == "" {
		return apperrors.Validation("item is required")
	}
	if quantity <= 0 {
		return apperrors.Validation("quantity must be positive")
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	for _, line := range d.Lines {
		if line.ItemUID == itemUID {
			return apperrors.Validationf("item %s is already on the order", itemUID)
		}
	}
	d.Lines = append(d.Lines, DraftLine{ItemUID: itemUID, Quantity: quantity, Multiplier: multiplier})
	return nil
}

func (d *OrderDraft) RemoveLine(itemUID string) {
	for i, line := range d.Lines {
		if line.ItemUID == itemUID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return
		}
	}
}

// AmountDue computes the client-side total, sum of price x quantity x
// multiplier per line. This value is submitted as the order's trusted total.
func (d *OrderDraft) AmountDue(prices map[string]float64) float64 {
	total := 0.0
	for _, line := range d.Lines {
		total += prices[line.ItemUID] * float64(line.Quantity) * float64(line.Multiplier)
	}
	return total
}

// Reset clears every entered value and returns to the first step.
func (d *OrderDraft) Reset() {
	*d = *NewOrderDraft()
}

// Request validates the whole draft and materializes the create/edit payload.
func (d *OrderDraft) Request(prices map[string]float64) (orderControllers.OrderRequest, error) {
	for step := StepDate; step <= StepConfirm; step++ {
		if err := d.validateStep(step); err != nil {
			return orderControllers.OrderRequest{}, err
		}
	}

	lines := make([]orderControllers.LineRequest, 0, len(d.Lines))
	for _, line := range d.Lines {
		lines = append(lines, orderControllers.LineRequest{
			ItemUID:    line.ItemUID,
			Quantity:   line.Quantity,
			Multiplier: line.Multiplier,
		})
	}

	return orderControllers.OrderRequest{
		Date:         d.Date.UTC(),
		AmountDue:    d.AmountDue(prices),
		PaymentMode:  string(d.PaymentMode),
		DeliveryMode: string(d.DeliveryMode),
		Note:         d.Note,
		CustomerUID:  d.CustomerUID,
		Lines:        lines,
	}, nil
}
