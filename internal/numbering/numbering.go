package numbering

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/klsociety/governance-records-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resolution numbers encode the meeting in the middle component and the
// agenda item within the meeting in the last one: all resolutions passed on
// one date share a group number and are numbered 1..N in creation order.
//
// Group numbers come from the resolution_sequences counter table. The regex
// parsing of existing numbers survives only as a compatibility shim for
// legacy rows that predate the counter.

var (
	// ErrMissingInstituteCode is returned when an institute without a short
	// code tries to mint a GC number.
	ErrMissingInstituteCode = errors.New("institute has no code configured")

	gcNumberPattern  = regexp.MustCompile(`^[A-Za-z0-9]+_(\d+)_(\d+)$`)
	bomNumberPattern = regexp.MustCompile(`^bom_(\d+)_(\d+)$`)
)

// NextGC computes the next GC resolution number for an institute and meeting
// date, formatted "{code}_{group}_{series}". It must run inside the same
// transaction as the insert so a failed generation never leaves a row behind.
func NextGC(tx *gorm.DB, institute *models.Institute, date time.Time) (string, error) {
	if strings.TrimSpace(institute.Code) == "" {
		return "", ErrMissingInstituteCode
	}

	var sameDate []string
	if err := tx.Model(&models.GCResolution{}).
		Where("institute_id = ? AND gc_date = ?", institute.ID, date).
		Order("id ASC").
		Pluck("gc_no", &sameDate).Error; err != nil {
		return "", fmt.Errorf("failed to load same-date resolutions: %w", err)
	}

	series := len(sameDate) + 1

	var group int
	if len(sameDate) > 0 {
		// Later items of an existing meeting inherit its group number.
		group = parseGroup(sameDate[0], gcNumberPattern)
	} else {
		var err error
		group, err = nextGroup(tx, gcScopeKey(institute.ID), gcNumberPattern, func(tx *gorm.DB) ([]string, error) {
			var numbers []string
			err := tx.Model(&models.GCResolution{}).
				Where("institute_id = ?", institute.ID).
				Pluck("gc_no", &numbers).Error
			return numbers, err
		})
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%s_%d_%d", institute.Code, group, series), nil
}

// NextBOM computes the next BOM resolution number for a meeting date,
// formatted "bom_{group}_{series}". BOM numbering is society-wide.
func NextBOM(tx *gorm.DB, date time.Time) (string, error) {
	var sameDate []string
	if err := tx.Model(&models.BOMResolution{}).
		Where("bom_date = ?", date).
		Order("id ASC").
		Pluck("bom_no", &sameDate).Error; err != nil {
		return "", fmt.Errorf("failed to load same-date resolutions: %w", err)
	}

	series := len(sameDate) + 1

	var group int
	if len(sameDate) > 0 {
		group = parseGroup(sameDate[0], bomNumberPattern)
	} else {
		var err error
		group, err = nextGroup(tx, bomScopeKey(), bomNumberPattern, func(tx *gorm.DB) ([]string, error) {
			var numbers []string
			err := tx.Model(&models.BOMResolution{}).Pluck("bom_no", &numbers).Error
			return numbers, err
		})
		if err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("bom_%d_%d", group, series), nil
}

func gcScopeKey(instituteID uint64) string {
	return fmt.Sprintf("gc:%d", instituteID)
}

func bomScopeKey() string {
	return "bom"
}

// parseGroup extracts the group component of a rendered number. Legacy rows
// whose number does not match the pattern silently count as group 1; this
// degradation is deliberate and must not become an error.
func parseGroup(number string, pattern *regexp.Regexp) int {
	m := pattern.FindStringSubmatch(number)
	if m == nil {
		return 1
	}
	group, err := strconv.Atoi(m[1])
	if err != nil {
		return 1
	}
	return group
}

// nextGroup increments and returns the per-scope group counter. A missing
// counter row is seeded from the highest group parseable out of the scope's
// existing numbers, so legacy data keeps its sequence on first use.
func nextGroup(tx *gorm.DB, scopeKey string, pattern *regexp.Regexp, existingNumbers func(tx *gorm.DB) ([]string, error)) (int, error) {
	query := tx
	// sqlite has no row locks; its writes serialize on the connection anyway.
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq models.ResolutionSequence
	err := query.Where("scope_key = ?", scopeKey).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		numbers, err := existingNumbers(tx)
		if err != nil {
			return 0, fmt.Errorf("failed to load existing numbers: %w", err)
		}
		seq = models.ResolutionSequence{
			ScopeKey: scopeKey,
			GroupNo:  maxGroup(numbers, pattern),
		}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("failed to create sequence for %s: %w", scopeKey, err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("failed to load sequence for %s: %w", scopeKey, err)
	}

	seq.GroupNo++
	if err := tx.Save(&seq).Error; err != nil {
		return 0, fmt.Errorf("failed to advance sequence for %s: %w", scopeKey, err)
	}

	return seq.GroupNo, nil
}

func maxGroup(numbers []string, pattern *regexp.Regexp) int {
	max := 0
	for _, number := range numbers {
		if m := pattern.FindStringSubmatch(number); m != nil {
			if group, err := strconv.Atoi(m[1]); err == nil && group > max {
				max = group
			}
		}
	}
	return max
}
