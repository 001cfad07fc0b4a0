// Package criteria holds the fixed catalog of evaluation criteria offered to
// evaluators. Categories exist for display grouping only; they carry no
// selection semantics.
package criteria

// Category groups related criteria under a display heading.
type Category struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Categories is the catalog in display order.
var Categories = []Category{
	{
		Name: "Opening & Structure",
		Items: []string{
			"Strong opening",
			"Clear structure",
			"Smooth transitions",
			"Strong conclusion",
		},
	},
	{
		Name: "Delivery & Body Language",
		Items: []string{
			"Natural gestures",
			"Eye contact",
			"Confident posture",
			"Purposeful stage movement",
			"Facial expressions",
			"Professional presence",
		},
	},
	{
		Name: "Voice & Pacing",
		Items: []string{
			"Vocal variety",
			"Effective pauses",
			"Effective pacing",
			"Projection and clarity of voice",
			"Calm and controlled delivery",
		},
	},
	{
		Name: "Content & Language",
		Items: []string{
			"Engaging storytelling",
			"Appropriate humor",
			"Useful examples",
			"Creative content",
			"Clear and simple language",
			"Maintained focus on main message",
		},
	},
	{
		Name: "Connection & Control",
		Items: []string{
			"Energy and enthusiasm",
			"Audience connection",
			"Good time management",
			"Handling unexpected moments",
		},
	},
}

// All returns every criterion across categories, in catalog order.
func All() []string {
	items := make([]string, 0, 32)
	for _, category := range Categories {
		items = append(items, category.Items...)
	}
	return items
}
