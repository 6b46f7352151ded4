package validation

import (
	"net/url"
	"strings"
)

type URLValidator struct {
	maxLength       int
	maxBatchSize    int
	allowPrivateIPs bool
	ownHosts        map[string]struct{}
}

// NewURLValidator rejects targets on any of ownHosts, so a short link can
// never redirect to another short link of the same service.
func NewURLValidator(maxLength, maxBatchSize int, allowPrivateIPs bool, ownHosts ...string) *URLValidator {
	v := &URLValidator{
		maxLength:       maxLength,
		maxBatchSize:    maxBatchSize,
		allowPrivateIPs: allowPrivateIPs,
		ownHosts:        make(map[string]struct{}, len(ownHosts)),
	}
	for _, h := range ownHosts {
		if h != "" {
			v.ownHosts[strings.ToLower(h)] = struct{}{}
		}
	}
	return v
}

// HostOf returns the host[:port] of rawURL, or "" when it has none.
func HostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Host
	}
	return ""
}

func checkScheme(scheme string) error {
	switch strings.ToLower(scheme) {
	case "http", "https":
		return nil
	case "javascript", "vbscript", "data", "file", "blob", "about":
		return ErrUnsafeProtocol
	default:
		return ErrInvalidURLFormat
	}
}

// ValidateURL decides whether rawURL may become a redirect target.
func (v *URLValidator) ValidateURL(rawURL string) error {
	switch {
	case strings.TrimSpace(rawURL) == "":
		return ErrEmptyURL
	case len(rawURL) > v.maxLength:
		return ErrURLTooLong
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURLFormat
	}
	if err := checkScheme(u.Scheme); err != nil {
		return err
	}
	if u.Host == "" {
		return ErrInvalidURLFormat
	}

	// https://trusted.example@evil.example reads as the first host.
	if u.User != nil {
		return ErrCredentialsInURL
	}
	if _, own := v.ownHosts[strings.ToLower(u.Host)]; own {
		return ErrSelfReference
	}
	if v.allowPrivateIPs {
		return nil
	}
	return CheckHost(u.Host)
}

// ValidateBatch checks every entry and reports all failures by index.
func (v *URLValidator) ValidateBatch(urls []string) error {
	switch {
	case len(urls) == 0:
		return ErrEmptyBatch
	case len(urls) > v.maxBatchSize:
		return ErrBatchTooLarge
	}

	var failed []IndexedError
	for i, u := range urls {
		if err := v.ValidateURL(u); err != nil {
			failed = append(failed, IndexedError{Index: i, Err: err})
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &BatchValidationError{Errors: failed}
}
