package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"hoteldesk/internal/domain"
)

const (
	defaultMinAdvancePercent = "10"
	defaultPrivilegedRoles   = "Admin,Manager"
	defaultEmergencyMaint    = "true"
	defaultJWTAccessTTL      = "24h"
	defaultJWTSecret         = "change-me-jwt-secret"
)

// RuntimeConfig holds the business parameters the core treats as
// configuration rather than constants: the minimum advance-payment fraction,
// which roles may force room-status overrides, and whether emergency
// Occupied->Maintenance moves are permitted at all.
type RuntimeConfig struct {
	AppEnv                    string
	MinAdvancePercent         float64
	PrivilegedRoles           map[domain.Role]bool
	AllowEmergencyMaintenance bool
	JWTSecret                 string
	JWTAccessTTL              time.Duration
}

// Privileged reports whether the role may bypass transition rules with
// force=true.
func (c *RuntimeConfig) Privileged(role domain.Role) bool {
	return c.PrivilegedRoles[role]
}

// MinimumAdvance returns the smallest acceptable advance payment for a stay.
func (c *RuntimeConfig) MinimumAdvance(nights int, rate float64) float64 {
	return float64(nights) * rate * c.MinAdvancePercent / 100
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	pct, err := strconv.ParseFloat(getEnv("MIN_ADVANCE_PERCENT", defaultMinAdvancePercent), 64)
	if err != nil || pct < 0 || pct > 100 {
		return nil, fmt.Errorf("MIN_ADVANCE_PERCENT must be a number in [0,100]")
	}
	cfg.MinAdvancePercent = pct

	cfg.PrivilegedRoles = make(map[domain.Role]bool)
	for _, r := range strings.Split(getEnv("PRIVILEGED_ROLES", defaultPrivilegedRoles), ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			cfg.PrivilegedRoles[domain.Role(r)] = true
		}
	}
	if len(cfg.PrivilegedRoles) == 0 {
		return nil, fmt.Errorf("PRIVILEGED_ROLES must name at least one role")
	}

	cfg.AllowEmergencyMaintenance = parseBoolEnv("ALLOW_EMERGENCY_MAINTENANCE", defaultEmergencyMaint)

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	if cfg.JWTAccessTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}

	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}

	log.Printf("runtime config: min_advance_percent=%.1f privileged_roles=%s emergency_maintenance=%t",
		cfg.MinAdvancePercent, getEnv("PRIVILEGED_ROLES", defaultPrivilegedRoles), cfg.AllowEmergencyMaintenance)

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseBoolEnv(name, def string) bool {
	v, err := strconv.ParseBool(getEnv(name, def))
	if err != nil {
		log.Printf("invalid %s, falling back to %s", name, def)
		v, _ = strconv.ParseBool(def)
	}
	return v
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", name, raw)
	}
	return d, nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}
