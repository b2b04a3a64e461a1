package service

import (
	"context"

	"targ/internal/domain/entity"
)

type Mailer interface {
	SendInvoice(ctx context.Context, invoice *entity.Invoice) error
}
