package chat

const (
	contactLink   = "contact"
	contactSuffix = "\n\n📱 WhatsApp: https://wa.me/9779845323733\n📧 Email: info@sarozpokhrel.com.np"

	WelcomeText  = "👋 Hi! I'm your PU Notes Assistant. How can I help you today?"
	FallbackText = "I understand you're looking for study materials. Please use the options below or try keywords like 'BBA', 'Law', or 'Nepali Literature' to find what you need."

	// replies mentioning this carry the navigation options as suggestions
	suggestionTrigger = "study materials"
)

// Option is a canned answer. Keywords are lowercase and matched as substrings of the input.
type Option struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
	Response string   `json:"response"`
	// Link is a site path, or "contact" for the contact lines appended to Response.
	Link string `json:"link,omitempty"`
}

// IsContact reports whether the option answers with the contact details.
func (o Option) IsContact() bool {
	return o.Link == contactLink
}

// DefaultOptions is the option table in priority order.
var DefaultOptions = []Option{
	{
		Text:     "📚 BBA Notes",
		Keywords: []string{"bba", "bba notes", "bachelor of business administration", "business"},
		Response: "Here are BBA study materials for all semesters. Visit our study materials section to find comprehensive notes, assignments, and resources for BBA courses.",
		Link:     "/study-materials",
	},
	{
		Text:     "📖 BBA-BI Notes",
		Keywords: []string{"bba-bi", "bba bi", "business information", "bi notes"},
		Response: "BBA-BI (Business Information) notes and resources are available in our study materials section. Find semester-wise notes and practical guides.",
		Link:     "/study-materials",
	},
	{
		Text:     "📝 Law Notes",
		Keywords: []string{"law", "law notes", "legal", "jurisprudence"},
		Response: "Legal studies and law notes for various courses are available. Check our study materials for comprehensive law resources.",
		Link:     "/study-materials",
	},
	{
		Text:     "📞 Contact",
		Keywords: []string{"contact", "help", "support", "talk to someone", "human"},
		Response: "Need more help? Contact us directly:",
		Link:     contactLink,
	},
	{
		Text:     "📖 Nepali Literature",
		Keywords: []string{"nepali literature", "साहित्य", "nepali books", "literature"},
		Response: "Explore our collection of Nepali literature including classic and contemporary works.",
		Link:     "/nepali-literature",
	},
}
