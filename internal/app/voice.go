package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// VoiceService signs Vivox access tokens so seated players can join their
// table's voice channel. One positional channel exists per table, named after
// the match ID.
type VoiceService struct {
	secret string
	issuer string
	domain string
	ttl    time.Duration
}

const (
	VoiceActionLogin = "login"
	VoiceActionJoin  = "join"
)

func NewVoiceService(secret, issuer, domain string, ttl time.Duration) *VoiceService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &VoiceService{secret: secret, issuer: issuer, domain: domain, ttl: ttl}
}

// TableChannel is the voice channel name for a match.
func TableChannel(matchID string) string { return "tarot-" + matchID }

// GenerateToken signs an HS256 token for a login or a channel join.
func (s *VoiceService) GenerateToken(user, action, channel string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("voice service is not configured")
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}
	if s.secret == "" || s.issuer == "" || s.domain == "" {
		return "", fmt.Errorf("voice config is incomplete")
	}

	userURI := s.userURI(user)
	targetURI, err := s.targetURI(action, channel, userURI)
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"exp": time.Now().Add(s.ttl).Unix(),
		"vxa": action,
		"vxi": fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
		"f":   userURI,
		"t":   targetURI,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *VoiceService) userURI(user string) string {
	return "sip:." + s.issuer + "." + user + ".@" + s.domain
}

func (s *VoiceService) channelURI(channel string) string {
	return "sip:confctl-g-" + channel + "@" + s.domain
}

func (s *VoiceService) targetURI(action, channel, userURI string) (string, error) {
	switch action {
	case VoiceActionLogin:
		return userURI, nil
	case VoiceActionJoin:
		if channel == "" {
			return "", fmt.Errorf("channel is required for join tokens")
		}
		return s.channelURI(channel), nil
	default:
		return "", fmt.Errorf("unsupported voice action: %s", action)
	}
}
