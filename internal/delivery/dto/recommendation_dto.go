package dto

// Response DTOs

type RecommendationEntry struct {
	Guideline  GuidelineResponse `json:"guideline"`
	Status     string            `json:"status"`
	IsSelected bool              `json:"is_selected"`
}

type RecommendationResponse struct {
	Current  []RecommendationEntry `json:"current"`
	Upcoming []RecommendationEntry `json:"upcoming"`
	Age      int                   `json:"age"`
}
