package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tarot/internal/ports"
)

const defaultWelcomeBonusGold = 10000

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// WelcomeBonusGranted is false when the bonus had already been granted.
	WelcomeBonusGranted bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	bonuses  ports.WelcomeBonusPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/bonuses must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, bonuses ports.WelcomeBonusPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		bonuses:  bonuses,
		rng:      rng,
	}
}

// OnboardNewUser initializes profile and wallet for a newly created account.
// Returns a Result with any non-fatal issues and an error if the welcome bonus
// cannot be granted. Profile updates are best-effort.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.bonuses == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		// Profile updates are best-effort; wallet grants are more important.
		result.ProfileUpdateErr = err
	}

	granted, err := s.bonuses.GrantWelcomeBonusOnce(ctx, userID, defaultWelcomeBonusGold, map[string]interface{}{
		"reason": "welcome_bonus",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant welcome bonus: %w", err)
	}
	result.WelcomeBonusGranted = granted

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns := []string{"Panda", "Tiger", "Eagle", "Dolphin", "Wolf", "Otter", "Falcon", "Bear", "Fox", "Lion"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
