package section

import (
	"slices"
	"strings"
)

const DefaultPeriod = "/month"

// popularIndex is the tuple position of the popular marker.
const popularIndex = 4

type PricingPlan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Popular     bool     `json:"popular"`
	Features    []string `json:"features"`
}

// Valid reports whether the plan carries its required name and price.
func (p PricingPlan) Valid() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Price) != ""
}

// Copy returns a duplicate named "<name> (Copy)" that is never marked popular.
func (p PricingPlan) Copy() PricingPlan {
	dup := p
	dup.Name = p.Name + " (Copy)"
	dup.Popular = false
	dup.Features = slices.Clone(p.Features)
	return dup
}

type Plans []PricingPlan

func (Plans) Kind() Kind { return KindPricing }

// ParsePlans decodes Name|Price|Period|Description|Popular|Feature... records
// joined by "||". Records without a name or price are dropped. The content is
// expected to be migrated already, see MigratePlans.
func ParsePlans(content string) Plans {
	var plans Plans
	for _, rec := range splitRecords(content) {
		parts := splitFields(rec)
		plan := PricingPlan{
			Name:        field(parts, 0),
			Price:       field(parts, 1),
			Period:      field(parts, 2),
			Description: field(parts, 3),
			Popular:     field(parts, popularIndex) == "1",
		}
		if plan.Period == "" {
			plan.Period = DefaultPeriod
		}
		if len(parts) > popularIndex+1 {
			for _, f := range parts[popularIndex+1:] {
				if f != "" {
					plan.Features = append(plan.Features, f)
				}
			}
		}
		if plan.Valid() {
			plans = append(plans, plan)
		}
	}
	return plans
}

// SerializePlans is the inverse of ParsePlans.
func SerializePlans(plans Plans) string {
	records := make([]string, 0, len(plans))
	for _, p := range plans {
		period := p.Period
		if period == "" {
			period = DefaultPeriod
		}
		popular := "0"
		if p.Popular {
			popular = "1"
		}
		fields := []string{p.Name, p.Price, period, p.Description, popular}
		for _, f := range p.Features {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		records = append(records, joinFields(fields...))
	}
	return joinRecords(records)
}

// MigratePlans inserts the popular marker "0" at index 4 of every tuple that
// does not carry one yet. A tuple whose fifth field is exactly "0" or "1" is
// treated as migrated, so a plan whose first feature is literally "0" or "1"
// is misread. Rows stamped with the current content version skip this step.
func MigratePlans(content string) string {
	records := splitRecords(content)
	if len(records) == 0 {
		return content
	}

	for i, rec := range records {
		parts := splitFields(rec)
		if len(parts) < 2 {
			continue
		}
		if len(parts) > popularIndex && (parts[popularIndex] == "0" || parts[popularIndex] == "1") {
			records[i] = joinFields(parts...)
			continue
		}
		for len(parts) < popularIndex {
			parts = append(parts, "")
		}
		migrated := make([]string, 0, len(parts)+1)
		migrated = append(migrated, parts[:popularIndex]...)
		migrated = append(migrated, "0")
		migrated = append(migrated, parts[popularIndex:]...)
		records[i] = joinFields(migrated...)
	}
	return joinRecords(records)
}
