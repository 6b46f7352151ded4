package link

import (
	"time"

	"github.com/google/uuid"
)

type ShortLink struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	TargetURL    string     `json:"target_url"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	EvictAt      time.Time  `json:"evict_at"`
	PasswordHash string     `json:"password_hash,omitempty"`
	ClickLimit   *int64     `json:"click_limit,omitempty"`
	IsActive     bool       `json:"is_active"`
}

// Expired reports whether the link's expiry is at or before now.
func (l *ShortLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}

func (l *ShortLink) Protected() bool {
	return l.PasswordHash != ""
}

// Exhausted reports whether a click-limited link has no allowance left.
func (l *ShortLink) Exhausted() bool {
	return l.ClickLimit != nil && *l.ClickLimit <= 0
}

// Cacheable reports whether the record can never be mutated by resolution.
func (l *ShortLink) Cacheable() bool {
	return l.ClickLimit == nil && l.IsActive
}

type Options struct {
	CustomAlias string
	ExpiresAt   *time.Time
	Password    string
	ClickLimit  *int64
}

type Verdict int

const (
	VerdictFound Verdict = iota
	VerdictNotFound
	VerdictExpired
	VerdictInactive
	VerdictPasswordRequired
	VerdictPasswordMismatch
	VerdictLimitExhausted
)

var verdictNames = [...]string{
	VerdictFound:            "found",
	VerdictNotFound:         "not_found",
	VerdictExpired:          "expired",
	VerdictInactive:         "inactive",
	VerdictPasswordRequired: "password_required",
	VerdictPasswordMismatch: "password_mismatch",
	VerdictLimitExhausted:   "limit_exhausted",
}

func (v Verdict) String() string {
	if v < 0 || int(v) >= len(verdictNames) {
		return "unknown"
	}
	return verdictNames[v]
}

// Resolution is the outcome of resolving a code. TargetURL is set only
// when Verdict is VerdictFound.
type Resolution struct {
	Verdict   Verdict
	TargetURL string
}

func (r Resolution) Found() bool {
	return r.Verdict == VerdictFound
}

func found(target string) Resolution {
	return Resolution{Verdict: VerdictFound, TargetURL: target}
}

func verdict(v Verdict) Resolution {
	return Resolution{Verdict: v}
}
