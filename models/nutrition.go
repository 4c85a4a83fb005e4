package models

// NutritionEstimate is the transient result of analyzing one meal photo.
type NutritionEstimate struct {
	FoodName     string `json:"foodName"`
	Calories     int    `json:"calories"`
	ProteinGrams int    `json:"proteinGrams"`
	CarbsGrams   int    `json:"carbsGrams"`
	FatGrams     int    `json:"fatGrams"`
	RawText      string `json:"rawText"`
}
