package auth

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Validate checks the redirect URI, when one is given, is an absolute http(s) URL.
func (p BeginParameters) Validate() error {
	if p.RedirectURI == "" {
		return nil
	}
	u, err := url.Parse(p.RedirectURI)
	if err != nil {
		return errors.Wrap(ErrInvalidRequest, "redirect uri is not a valid url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Wrap(ErrInvalidRequest, "redirect uri must use http or https")
	}
	if u.Host == "" {
		return errors.Wrap(ErrInvalidRequest, "redirect uri must be absolute")
	}
	if u.Fragment != "" {
		return errors.Wrap(ErrInvalidRequest, "redirect uri must not contain a fragment")
	}
	return nil
}

// Validate treats a blank username as missing. The username itself is matched verbatim.
func (p AuthenticateParameters) Validate() error {
	if strings.TrimSpace(p.Username) == "" || p.Password == "" || p.State == "" {
		return ErrMissingField
	}
	return nil
}

func (p TokenParameters) Validate() error {
	if p.State == "" {
		return errors.Wrap(ErrMissingField, "state")
	}
	return nil
}
