package auth

import (
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const defaultTOTPIssuer = "FinanceTracker"

type Authenticator struct {
	Issuer string
}

// GenerateSecret uses SHA1 for authenticator app compatibility.
func (a Authenticator) GenerateSecret(accountName string) (otpURL string, secret string, err error) {
	issuer := a.Issuer
	if issuer == "" {
		issuer = defaultTOTPIssuer
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}

	return key.URL(), key.Secret(), nil
}

func (a Authenticator) VerifyCode(secret, code string) bool {
	if secret == "" || code == "" {
		return false
	}
	return totp.Validate(code, secret)
}
