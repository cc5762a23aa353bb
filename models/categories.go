package models

// Category is one entry of a closed category enumeration, serialized the way
// the frontend consumes it.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CategoryOther is the default category for both projects and articles.
const CategoryOther = "other"

// ProjectCategories is the closed set of project categories.
var ProjectCategories = []Category{
	{Value: "web_dev", Label: "Web Development"},
	{Value: "mobile_app", Label: "Mobile App Development"},
	{Value: "ai_ml", Label: "AI & Machine Learning"},
	{Value: "cybersecurity", Label: "Cybersecurity"},
	{Value: "data_science", Label: "Data Science"},
	{Value: "game_dev", Label: "Game Development"},
	{Value: "cloud", Label: "Cloud Computing"},
	{Value: "devops", Label: "DevOps & Automation"},
	{Value: "software", Label: "Software Engineering"},
	{Value: CategoryOther, Label: "Other"},
}

// ArticleCategories is the closed set of article categories. It is a distinct
// enumeration from ProjectCategories, not a superset.
var ArticleCategories = []Category{
	{Value: "tech", Label: "Technology"},
	{Value: "programming", Label: "Programming"},
	{Value: "web_dev", Label: "Web Development"},
	{Value: "ai_ml", Label: "Artificial Intelligence & Machine Learning"},
	{Value: "cybersecurity", Label: "Cybersecurity"},
	{Value: "software", Label: "Software Engineering"},
	{Value: "business", Label: "Business & Startups"},
	{Value: "data_science", Label: "Data Science"},
	{Value: "finance", Label: "Finance & Investment"},
	{Value: "design", Label: "UI/UX & Product Design"},
	{Value: CategoryOther, Label: "Other"},
}

func containsCategory(categories []Category, value string) bool {
	for _, c := range categories {
		if c.Value == value {
			return true
		}
	}
	return false
}

// ValidProjectCategory reports whether value is a member of ProjectCategories.
func ValidProjectCategory(value string) bool {
	return containsCategory(ProjectCategories, value)
}

// ValidArticleCategory reports whether value is a member of ArticleCategories.
func ValidArticleCategory(value string) bool {
	return containsCategory(ArticleCategories, value)
}
