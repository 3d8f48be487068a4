package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/giftwise/giftwise-cli/internal/models"
)

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func profileJSON(p models.Profile) string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func (c *Client) ideasPrompt(person models.Person, budgetLeft float64) string {
	target := budgetLeft
	if target <= 0 {
		target = 50
	}
	pr := person.Profile

	basic := strings.TrimSpace(fmt.Sprintf("%s %s (%s)",
		ageLabel(pr.Age), pr.Sex, orNone(pr.Relationship)))

	return fmt.Sprintf(`Act as a thoughtful personal shopper. Suggest 5 specific gift ideas for %s.
Target Budget: Under %s%.0f (be flexible but realistic).

User Profile:
1. Basic Info: %s
2. Problem to Solve (Highest Priority): %s
3. Aesthetic/Style: %s
4. Current Obsession: %s
5. Do Not Buy (Strictly Avoid): %s
6. Gift History (Avoid duplicates): %s
7. Sizes: Shirt: %s, Shoe: %s, Other: %s

Output Requirements:
Return ONLY a valid JSON array of objects. No markdown formatting.
Schema:
[
  {
    "name": "Product Name",
    "estimatedPrice": 25,
    "reason": "Why this matches their profile (max 10 words)",
    "searchQuery": "Specific search term to find this product online"
  }
]`,
		person.Name, c.Currency, target,
		basic,
		orNone(pr.ProblemToSolve),
		orNone(pr.Aesthetics),
		orNone(pr.Obsession),
		orNone(pr.DoNotBuy),
		orNone(pr.GiftHistory),
		orNA(pr.ShirtSize), orNA(pr.ShoeSize), orNA(pr.OtherSize))
}

func ageLabel(age string) string {
	if strings.TrimSpace(age) == "" {
		return ""
	}
	return age + " years old"
}

func extractProfilePrompt(text string) string {
	return fmt.Sprintf(`Extract structured user profile data from the following unstructured text.
Text: %q

Return a JSON object with these keys (use empty strings if not found):
- age (string)
- relationship (string)
- sex (string: Male/Female/Other)
- shirtSize (string)
- shoeSize (string)
- otherSize (string, e.g. Ring size)
- aesthetics (string, comma separated)
- obsession (string)
- problemToSolve (string)
- doNotBuy (string)
- giftHistory (string)
- shoppingLinks (string)`, text)
}

func strategyPrompt(person models.Person) string {
	return fmt.Sprintf(`Analyze this person's profile and provide a 2-sentence "Gifting Strategy" to help me find the perfect present.
Person: %s
Profile: %s

Output ONLY the advice text. Keep it punchy, insightful, and helpful. Focus on connecting their 'Problem to Solve' with their 'Aesthetics'.`,
		person.Name, profileJSON(person.Profile))
}

func analyzePrompt(person models.Person, giftName string) string {
	return fmt.Sprintf(`Rate this gift idea for %s on a scale of 1-10 and explain why in 1 short sentence.
Gift: %s
Profile: %s

Output Format: "Score: X/10. [Reasoning]"`,
		person.Name, giftName, profileJSON(person.Profile))
}

func (c *Client) alternativesPrompt(person models.Person, giftName string, price float64) string {
	return fmt.Sprintf(`Suggest 3 alternative gift ideas for %s that are similar to %q but distinct options.
Current Gift Price: %s%.0f (Keep alternatives in similar range).
Profile: %s

Output Requirements:
Return ONLY a valid JSON array of objects.
Schema:
[ { "name": "Product Name", "estimatedPrice": 25, "category": "Category" } ]`,
		person.Name, giftName, c.Currency, price, profileJSON(person.Profile))
}

func cardMessagePrompt(person models.Person, giftName string) string {
	relationship := person.Profile.Relationship
	if strings.TrimSpace(relationship) == "" {
		relationship = "Friend"
	}
	return fmt.Sprintf(`Write a short, warm, and witty gift card message for %s (%s) to go with their gift: %q.
Tone: Sincere but fun. Max 30 words.
Output ONLY the message text.`,
		person.Name, relationship, giftName)
}
