package mfa

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Key is a freshly generated TOTP secret and its provisioning URL.
type Key struct {
	Secret string
	URL    string
}

type TOTP struct {
	issuer string
}

func NewTOTP(issuer string) *TOTP {
	return &TOTP{issuer: issuer}
}

func (t *TOTP) Generate(accountName string) (Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return Key{}, err
	}
	return Key{Secret: key.Secret(), URL: key.URL()}, nil
}

func (t *TOTP) Validate(code, secret string) bool {
	if code == "" || secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}

// CodeAt is used by tests and demo tooling.
func CodeAt(secret string, at time.Time) (string, error) {
	return totp.GenerateCode(secret, at)
}
