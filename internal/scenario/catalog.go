package scenario

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/maxretail/training-api/internal/persona"
)

// catalogEntry is a built-in practice situation shipped with the platform.
type catalogEntry struct {
	Persona         string
	Difficulty      string
	Title           string
	Description     string
	KpiFocus        string
	CustomerLine    string
	Challenge       string
	LearningOutcome string
}

var builtinCatalog = []catalogEntry{
	{
		Persona:         "Bargain Hunter",
		Difficulty:      DifficultyEasy,
		Title:           "Price match request",
		Description:     "A customer is looking at a discounted shirt but wants an additional discount.",
		KpiFocus:        "conversion",
		CustomerLine:    "This shirt is already 30% off, but I saw it cheaper online. Can you match that price?",
		Challenge:       "Price objection handling",
		LearningOutcome: "Handle price objections while maintaining the value proposition.",
	},
	{
		Persona:         "Bargain Hunter",
		Difficulty:      DifficultyEasy,
		Title:           "Why is this one more expensive",
		Description:     "Customer comparing multiple similar products by price only.",
		KpiFocus:        "avg_bill_value",
		CustomerLine:    "These two shirts look the same to me. Why is this one more expensive?",
		Challenge:       "Value differentiation",
		LearningOutcome: "Communicate product value beyond price.",
	},
	{
		Persona:         "Bargain Hunter",
		Difficulty:      DifficultyMedium,
		Title:           "Bulk discount negotiation",
		Description:     "Customer wants to negotiate a bulk discount for family shopping.",
		KpiFocus:        "avg_bill_value",
		CustomerLine:    "I'm buying for my whole family today. What kind of bulk discount can you offer?",
		Challenge:       "Negotiation and bundle selling",
		LearningOutcome: "Handle bulk purchase negotiations professionally.",
	},
	{
		Persona:         "Bargain Hunter",
		Difficulty:      DifficultyHard,
		Title:           "Competitor ultimatum",
		Description:     "Aggressive price negotiator threatening to leave.",
		KpiFocus:        "retention",
		CustomerLine:    "Your competitor is offering 50% off everything. I'll leave right now unless you can beat that.",
		Challenge:       "Aggressive negotiation tactics",
		LearningOutcome: "Handle high-pressure situations while protecting margins.",
	},
	{
		Persona:         "Overwhelmed Parent",
		Difficulty:      DifficultyEasy,
		Title:           "School uniforms in a hurry",
		Description:     "Parent with a restless child needs a quick clothing solution.",
		KpiFocus:        "conversion",
		CustomerLine:    "I need school uniforms for my son quickly. He's getting restless. What do you have in size 8?",
		Challenge:       "Time-pressured service",
		LearningOutcome: "Provide efficient service under time pressure.",
	},
	{
		Persona:         "Overwhelmed Parent",
		Difficulty:      DifficultyMedium,
		Title:           "Three kids, three needs",
		Description:     "Parent shopping for multiple children with different needs.",
		KpiFocus:        "avg_bill_value",
		CustomerLine:    "I need clothes for three kids - school wear, a party dress and casual wear. Where do I start?",
		Challenge:       "Complex multi-need situations",
		LearningOutcome: "Organize and prioritize multiple customer needs.",
	},
	{
		Persona:         "Overwhelmed Parent",
		Difficulty:      DifficultyHard,
		Title:           "Tight budget, picky kids",
		Description:     "Frustrated parent with budget constraints and picky children.",
		KpiFocus:        "customer_satisfaction",
		CustomerLine:    "My daughter hates everything I pick, my budget is tight, and we need clothes today. This is impossible!",
		Challenge:       "Managing stress and constraints",
		LearningOutcome: "Handle emotionally charged situations with empathy.",
	},
	{
		Persona:         "Trend-Seeking Influencer",
		Difficulty:      DifficultyEasy,
		Title:           "Instagram-worthy outfit",
		Description:     "Young customer looking for a photogenic outfit.",
		KpiFocus:        "conversion",
		CustomerLine:    "I need something that will look amazing in photos. What's your most Instagram-worthy piece?",
		Challenge:       "Style consultation",
		LearningOutcome: "Provide fashion advice and styling suggestions.",
	},
	{
		Persona:         "Trend-Seeking Influencer",
		Difficulty:      DifficultyMedium,
		Title:           "Something exclusive",
		Description:     "Influencer wanting exclusive or limited edition items.",
		KpiFocus:        "avg_bill_value",
		CustomerLine:    "Do you have anything exclusive that my followers haven't seen everywhere else?",
		Challenge:       "Exclusivity and differentiation",
		LearningOutcome: "Position products as unique and desirable.",
	},
	{
		Persona:         "Trend-Seeking Influencer",
		Difficulty:      DifficultyHard,
		Title:           "Sustainable and photogenic",
		Description:     "High-maintenance influencer with specific brand requirements.",
		KpiFocus:        "customer_satisfaction",
		CustomerLine:    "I only wear sustainable, ethically-made clothes that photograph well under studio lights. What can you show me?",
		Challenge:       "Specific and demanding requirements",
		LearningOutcome: "Handle complex product specifications and customer demands.",
	},
}

// SeedCatalog inserts the built-in scenarios for personas that have none yet.
// Runs after persona.Seed during migration.
func SeedCatalog(db *gorm.DB) error {
	personas := persona.NewRepository()
	byName := map[string]*persona.Persona{}

	for _, entry := range builtinCatalog {
		p, ok := byName[entry.Persona]
		if !ok {
			var err error
			p, err = personas.GetByName(db, entry.Persona)
			if err != nil {
				// skip catalog entries for personas removed by operators
				continue
			}
			byName[entry.Persona] = p
		}

		var count int64
		if err := db.Model(&TrainingScenario{}).
			Where("persona_id = ? AND title = ?", p.ID, entry.Title).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		data, err := json.Marshal(map[string]string{
			"customerDialogue": entry.CustomerLine,
			"challenge":        entry.Challenge,
			"learningOutcome":  entry.LearningOutcome,
		})
		if err != nil {
			return err
		}

		s := TrainingScenario{
			PersonaID:       p.ID,
			Title:           entry.Title,
			Description:     entry.Description,
			DifficultyLevel: entry.Difficulty,
			KpiFocus:        entry.KpiFocus,
			ScenarioData:    datatypes.JSON(data),
			IsActive:        true,
		}
		if err := db.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
