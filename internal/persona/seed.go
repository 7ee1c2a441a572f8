package persona

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedPersona is the static shape of the reference personas inserted at
// migration time.
type seedPersona struct {
	Name              string
	Description       string
	Profile           map[string]interface{}
	DifficultyMapping map[string]string
}

var seedPersonas = []seedPersona{
	{
		Name:        "Bargain Hunter",
		Description: "Price-driven shopper who compares everything to online stores and resists upselling.",
		Profile: map[string]interface{}{
			"age":            32,
			"occupation":     "working professional",
			"behavior":       "Constantly asks about discounts, compares prices to online stores, and resists upselling.",
			"salesChallenge": "Tests the salesperson's ability to highlight value over price, offer alternatives within budget, and prevent churn to competitors.",
		},
		DifficultyMapping: map[string]string{
			"easy":   "Customer is curious and open-minded, few objections.",
			"medium": "Customer is skeptical and raises two or three price objections.",
			"hard":   "Customer is resistant, price-sensitive and threatens to buy online.",
			"expert": "Customer raises multiple objections under time pressure.",
		},
	},
	{
		Name:        "Overwhelmed Parent",
		Description: "Stressed parent juggling kids, impatient with long explanations, needs safe and practical products.",
		Profile: map[string]interface{}{
			"age":            40,
			"occupation":     "father of two",
			"behavior":       "Stressed, juggling kids, impatient with long explanations, but needs safe and practical products.",
			"salesChallenge": "Tests the salesperson's ability to simplify options quickly, reassure about product safety and quality, and offer convenience.",
		},
		DifficultyMapping: map[string]string{
			"easy":   "Parent has a single clear need and some patience.",
			"medium": "Parent is shopping for several children with different needs.",
			"hard":   "Parent is frustrated, budget-constrained and short on time.",
			"expert": "Parent is upset, children are restless and the store is busy.",
		},
	},
	{
		Name:        "Trend-Seeking Influencer",
		Description: "Fashion-conscious student who wants the newest arrivals and expects premium service.",
		Profile: map[string]interface{}{
			"age":            22,
			"occupation":     "college student",
			"behavior":       "Wants the newest arrivals, asks for styling tips, posts on social media, expects premium service.",
			"salesChallenge": "Tests the salesperson's ability to stay updated on trends, upsell premium arrivals, and personalize recommendations.",
		},
		DifficultyMapping: map[string]string{
			"easy":   "Customer asks for a photogenic outfit.",
			"medium": "Customer wants exclusives their followers have not seen.",
			"hard":   "Customer has demanding brand and sustainability requirements.",
			"expert": "Customer expects styling, exclusivity and sustainability at once, on a deadline.",
		},
	},
}

// Seed inserts the reference personas, skipping any that already exist so
// migration stays idempotent.
func Seed(db *gorm.DB) error {
	for _, sp := range seedPersonas {
		profile, err := json.Marshal(sp.Profile)
		if err != nil {
			return err
		}
		mapping, err := json.Marshal(sp.DifficultyMapping)
		if err != nil {
			return err
		}
		p := Persona{
			Name:              sp.Name,
			Description:       sp.Description,
			Profile:           datatypes.JSON(profile),
			Scenarios:         datatypes.JSON([]byte("[]")),
			DifficultyMapping: datatypes.JSON(mapping),
			IsActive:          true,
		}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&p).Error
		if err != nil {
			return err
		}
	}
	return nil
}
