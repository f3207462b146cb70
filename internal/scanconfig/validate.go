package scanconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 에러 필드명을 YAML 키로 표시
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return toValidationError(verrs[0])
		}
		return ValidationError{"config", err.Error()}
	}

	// === Cross-section ===
	if cfg.Stability.AuditTopN > cfg.Stability.SnapshotTopN {
		return ValidationError{"stability.audit_top_n", "must be <= stability.snapshot_top_n"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	// 단기물 티어 1 기준이 플로우 스코어러보다 낮으면 점수 없는 티어 1 결정 발생
	if cfg.Resolver.Tier1MinPremium < cfg.Flow.ShortLeanMinPremium {
		warnings = append(warnings, Warning{
			Code:    "TIER1_BELOW_FLOW_LEAN",
			Message: "resolver.tier1_min_premium < flow.short_lean_min_premium: tier 1 may fire without a flow lean",
		})
	}

	if !cfg.Resolver.SustainedOITierEnabled() {
		warnings = append(warnings, Warning{
			Code:    "SUSTAINED_OI_DISABLED",
			Message: "tier 5b disabled: thin instruments with sustained OI builds stay neutral",
		})
	}

	if cfg.Stability.FlipPenalty == 1 {
		warnings = append(warnings, Warning{
			Code:    "NO_FLIP_PENALTY",
			Message: "stability.flip_penalty = 1: direction flips are never discounted",
		})
	}

	return warnings
}

func toValidationError(fe validator.FieldError) ValidationError {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "gte":
		return ValidationError{field, fmt.Sprintf("must be >= %s", fe.Param())}
	case "gt":
		return ValidationError{field, fmt.Sprintf("must be > %s", fe.Param())}
	case "lte":
		return ValidationError{field, fmt.Sprintf("must be <= %s", fe.Param())}
	case "lt":
		return ValidationError{field, fmt.Sprintf("must be < %s", fe.Param())}
	case "gtfield", "gtefield", "ltefield":
		return ValidationError{field, fmt.Sprintf("must satisfy %s %s", fe.Tag(), fe.Param())}
	case "required":
		return ValidationError{field, "required"}
	default:
		return ValidationError{field, fmt.Sprintf("failed validation: %s", fe.Tag())}
	}
}
