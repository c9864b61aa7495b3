package lead

import (
	"math"
	"strconv"
	"strings"
)

const (
	scoreFloor = 5
	scoreCeil  = 95

	priorityHighThreshold   = 70
	priorityMediumThreshold = 40
)

// ScoreResult adalah hasil scoring linear berbobot. Fungsi ini
// explainable: setiap kontribusi bisa dilacak ke satu kondisi rule.
type ScoreResult struct {
	Score       int
	Probability int
	Priority    string
}

// ComputeScore menjalankan semua rule yang enabled terhadap satu lead.
// score = Σ points * (weight/100) untuk setiap kondisi yang cocok.
// probability = clamp(score, 5, 95). Priority: High ≥70, Medium ≥40, Low.
func ComputeScore(l Lead, rules []ScoringRule) ScoreResult {
	var total float64
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		weight := float64(rule.Weight) / 100.0
		for _, cond := range rule.Conditions {
			if conditionMatches(l, cond) {
				total += cond.Points * weight
			}
		}
	}

	score := int(math.Round(total))

	probability := score
	if probability < scoreFloor {
		probability = scoreFloor
	}
	if probability > scoreCeil {
		probability = scoreCeil
	}

	priority := PriorityLow
	switch {
	case score >= priorityHighThreshold:
		priority = PriorityHigh
	case score >= priorityMediumThreshold:
		priority = PriorityMedium
	}

	return ScoreResult{
		Score:       score,
		Probability: probability,
		Priority:    priority,
	}
}

func conditionMatches(l Lead, cond ScoringCondition) bool {
	value := fieldValue(l, cond.Field)

	switch cond.Operator {
	case "equals":
		return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(cond.Value))
	case "contains":
		return cond.Value != "" &&
			strings.Contains(strings.ToLower(value), strings.ToLower(cond.Value))
	case "greater_than":
		have, err1 := strconv.ParseFloat(strings.TrimSpace(value), 64)
		want, err2 := strconv.ParseFloat(strings.TrimSpace(cond.Value), 64)
		return err1 == nil && err2 == nil && have > want
	case "not_null":
		return strings.TrimSpace(value) != "" && value != "0"
	default:
		return false
	}
}

// fieldValue menormalisasi field nullable ke ""/"0" supaya operator
// tidak pernah error di data yang belum lengkap.
func fieldValue(l Lead, field string) string {
	switch field {
	case "name":
		return l.Name
	case "email":
		return l.Email
	case "phone":
		return l.Phone
	case "service_interest":
		return l.ServiceInterest
	case "source":
		return l.Source
	case "stage":
		return l.Stage
	case "deal_amount":
		return strconv.FormatFloat(l.DealAmount, 'f', -1, 64)
	case "follow_up_date":
		if l.FollowUpDate == nil {
			return ""
		}
		return l.FollowUpDate.Format("2006-01-02")
	case "assigned_to":
		if l.AssignedTo == nil {
			return ""
		}
		return l.AssignedTo.String()
	default:
		return ""
	}
}
