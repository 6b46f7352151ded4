package link

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Resolve looks up code and applies the link's policy. Verdicts other than
// VerdictFound are returned as values; the error is reserved for storage
// and hashing faults.
func (s *Service) Resolve(ctx context.Context, code, password string) (Resolution, error) {
	if !validCode(code) {
		return verdict(VerdictNotFound), nil
	}

	l, err := s.get(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return verdict(VerdictNotFound), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	if l.Expired(s.now()) {
		s.evict(ctx, code)
		return verdict(VerdictExpired), nil
	}
	if v, blocked := stateVerdict(l); blocked {
		return verdict(v), nil
	}

	if l.Protected() {
		if password == "" {
			return verdict(VerdictPasswordRequired), nil
		}
		ok, err := s.hasher.Verify(password, l.PasswordHash)
		if err != nil {
			return Resolution{}, fmt.Errorf("failed to verify password: %w", err)
		}
		if !ok {
			return verdict(VerdictPasswordMismatch), nil
		}
	}

	if l.ClickLimit == nil {
		return found(l.TargetURL), nil
	}
	return s.consumeClick(ctx, code)
}

// consumeClick decrements the remaining allowance inside a single store
// update, so concurrent resolutions of one code never both spend the last
// click. Reaching zero deactivates the link in the same write.
func (s *Service) consumeClick(ctx context.Context, code string) (Resolution, error) {
	var res Resolution
	_, err := s.update(ctx, code, func(cur *ShortLink) (bool, error) {
		if cur.Expired(s.now()) {
			res = verdict(VerdictExpired)
			return false, nil
		}
		if cur.Exhausted() {
			res = verdict(VerdictLimitExhausted)
			if cur.IsActive {
				cur.IsActive = false
				return true, nil
			}
			return false, nil
		}
		if !cur.IsActive {
			res = verdict(VerdictInactive)
			return false, nil
		}

		remaining := *cur.ClickLimit - 1
		cur.ClickLimit = &remaining
		if remaining == 0 {
			cur.IsActive = false
		}
		res = found(cur.TargetURL)
		return true, nil
	})
	if errors.Is(err, ErrNotFound) {
		return verdict(VerdictNotFound), nil
	}
	if err != nil {
		return Resolution{}, err
	}
	return res, nil
}

// stateVerdict reports why an inactive or spent link cannot resolve. A
// link switched off by its own click limit keeps answering LimitExhausted.
func stateVerdict(l *ShortLink) (Verdict, bool) {
	if l.IsActive {
		return 0, false
	}
	if l.Exhausted() {
		return VerdictLimitExhausted, true
	}
	return VerdictInactive, true
}

func (s *Service) evict(ctx context.Context, code string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.StoreTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, code); err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Warn("failed to evict expired link",
			slog.String("code", code),
			slog.String("error", err.Error()))
	}
}
