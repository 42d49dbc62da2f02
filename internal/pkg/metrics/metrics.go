// Package metrics defines the custom Prometheus metrics for the workforce
// auth API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Collectors are created unregistered so tests can build as many routers as
// they like; call MustRegister once at startup with the process registry.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "workforce_auth"

// ── OTP metrics ───────────────────────────────────────────────────────────────

// OTPIssuedTotal counts passcodes written to the ledger.
var OTPIssuedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time passcodes issued.",
	},
)

// OTPVerificationsTotal counts ledger verifications.
// Label:
//   - outcome: "valid", "not_found", "mismatch" or "expired"
var OTPVerificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verifications, labelled by outcome.",
	},
	[]string{"outcome"},
)

// BypassLoginsTotal counts logins that went through the development bypass.
var BypassLoginsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bypass_logins_total",
		Help:      "Total number of logins granted by the development bypass.",
	},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersProvisionedTotal counts user records created on first login.
// Label:
//   - role: role assigned to the new user
var UsersProvisionedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_provisioned_total",
		Help:      "Total number of users created by the identity resolver.",
	},
	[]string{"role"},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		OTPIssuedTotal,
		OTPVerificationsTotal,
		BypassLoginsTotal,
		UsersProvisionedTotal,
	}
}

// MustRegister registers every collector with reg. Collectors that are
// already registered are skipped.
func MustRegister(reg prometheus.Registerer) {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}
