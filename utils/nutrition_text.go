package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Ajmalajjuca/Bite-check/models"
)

// Each field is matched on its own so a reply that drifts from the prompt's
// layout still yields whatever lines it kept.
var (
	foodPattern     = regexp.MustCompile(`(?i)Food:\s*([^\n]+)`)
	caloriesPattern = regexp.MustCompile(`(?i)Calories:\s*(\d+)`)
	proteinPattern  = regexp.MustCompile(`(?i)Protein:\s*(\d+)`)
	carbsPattern    = regexp.MustCompile(`(?i)Carbs:\s*(\d+)`)
	fatPattern      = regexp.MustCompile(`(?i)Fat:\s*(\d+)`)
)

// ExtractNutrition pulls the food name and macro values out of a free-form
// model reply. It never fails: unmatched fields stay at 0 or "".
func ExtractNutrition(text string) models.NutritionEstimate {
	est := models.NutritionEstimate{RawText: text}

	if m := foodPattern.FindStringSubmatch(text); m != nil {
		est.FoodName = strings.TrimSpace(m[1])
	}
	est.Calories = matchInt(caloriesPattern, text)
	est.ProteinGrams = matchInt(proteinPattern, text)
	est.CarbsGrams = matchInt(carbsPattern, text)
	est.FatGrams = matchInt(fatPattern, text)

	return est
}

func matchInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0 // overflow
	}
	return n
}
