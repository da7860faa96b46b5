// Package verification issues email confirmation codes and bounds how many
// times a user may try to enter one.
package verification

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/logging"
	"github.com/dmitrijs2005/docflow/internal/mailer"
)

const (
	codeMin = 100000
	codeMax = 999999

	Subject    = "Код подтверждения регистрации"
	bodyFormat = "Ваш код подтверждения: %s"
)

// randReader is a seam for tests.
var randReader io.Reader = rand.Reader

type Issuer struct {
	sender mailer.Sender
	logger logging.Logger
}

func NewIssuer(sender mailer.Sender, logger logging.Logger) *Issuer {
	return &Issuer{sender: sender, logger: logger}
}

// Issue returns a uniformly random six-digit code in 100000..999999.
func (i *Issuer) Issue() (string, error) {
	n, err := rand.Int(randReader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

// Deliver sends the code once. Transport failures come back as a
// *common.DeliveryError.
func (i *Issuer) Deliver(ctx context.Context, email, code string) error {
	err := i.sender.Send(ctx, mailer.Message{
		To:      email,
		Subject: Subject,
		Body:    fmt.Sprintf(bodyFormat, code),
	})
	if err != nil {
		i.logger.Warn(ctx, "confirmation delivery failed", "email", email, "error", err)
		return &common.DeliveryError{Recipient: email, Err: err}
	}

	i.logger.Info(ctx, "confirmation code sent", "email", email)
	return nil
}
