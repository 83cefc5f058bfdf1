package chatclient

import (
	"strings"

	"fertilitycare/pkg/api"
)

type replyGroup int

const (
	groupDefault replyGroup = iota
	groupAssessment
	groupCycle
	groupTesting
	groupPartner
)

// quickReplies holds the canned follow-up prompts per group and language.
// A group missing a language falls back to its English variant.
var quickReplies = map[replyGroup]map[api.Language][]string{
	groupAssessment: {
		api.LanguageEnglish: {
			"What are common fertility tests?",
			"When should we see a specialist?",
			"What lifestyle changes can help?",
		},
		api.LanguageHindi: {
			"सामान्य प्रजनन परीक्षण कौन से हैं?",
			"हमें विशेषज्ञ से कब मिलना चाहिए?",
			"कौन से जीवनशैली बदलाव मदद कर सकते हैं?",
		},
		api.LanguageGujarati: {
			"સામાન્ય પ્રજનન પરીક્ષણો કયા છે?",
			"અમારે નિષ્ણાતને ક્યારે મળવું જોઈએ?",
			"કઈ જીવનશૈલીના ફેરફારો મદદ કરી શકે?",
		},
	},
	groupCycle: {
		api.LanguageEnglish: {
			"What's the best tracking method?",
			"How to identify ovulation?",
			"What if my cycle is irregular?",
		},
		api.LanguageHindi: {
			"सबसे अच्छा ट्रैकिंग तरीका क्या है?",
			"ओव्यूलेशन की पहचान कैसे करें?",
			"अगर मेरा चक्र अनियमित है तो क्या करें?",
		},
		api.LanguageGujarati: {
			"શ્રેષ્ઠ ટ્રેકિંગ પદ્ધતિ કઈ છે?",
			"ઓવ્યુલેશન કેવી રીતે ઓળખવું?",
			"જો મારું ચક્ર અનિયમિત હોય તો શું?",
		},
	},
	groupTesting: {
		api.LanguageEnglish: {
			"Are these tests painful?",
			"How accurate are the results?",
			"What do the results mean?",
		},
		api.LanguageHindi: {
			"क्या ये परीक्षण दर्दनाक होते हैं?",
			"परिणाम कितने सटीक होते हैं?",
			"परिणामों का क्या अर्थ है?",
		},
		api.LanguageGujarati: {
			"શું આ પરીક્ષણો પીડાદાયક છે?",
			"પરિણામો કેટલા સચોટ હોય છે?",
			"પરિણામોનો અર્થ શું છે?",
		},
	},
	groupPartner: {
		api.LanguageEnglish: {
			"How can we reduce stress?",
			"What should we expect emotionally?",
			"How to communicate better?",
		},
		api.LanguageHindi: {
			"हम तनाव कैसे कम कर सकते हैं?",
			"भावनात्मक रूप से हमें क्या उम्मीद करनी चाहिए?",
			"बेहतर संवाद कैसे करें?",
		},
		api.LanguageGujarati: {
			"અમે તણાવ કેવી રીતે ઘટાડી શકીએ?",
			"ભાવનાત્મક રીતે અમારે શું અપેક્ષા રાખવી?",
			"વધુ સારી રીતે વાતચીત કેવી રીતે કરવી?",
		},
	},
	// TODO: Gujarati translation for the default group is still pending review
	groupDefault: {
		api.LanguageEnglish: {
			"Tell me more about fertility testing",
			"How can I track my ovulation?",
			"What lifestyle changes can help?",
		},
		api.LanguageHindi: {
			"प्रजनन परीक्षण के बारे में और बताएं",
			"मैं ओव्यूलेशन कैसे ट्रैक करूं?",
			"कौन से जीवनशैली बदलाव मदद कर सकते हैं?",
		},
	},
}

// matchGroup picks the reply group by keyword match against the lowercased text.
func matchGroup(lower string) replyGroup {
	switch {
	case strings.Contains(lower, "fertility assessment") || strings.Contains(lower, "health indicators"):
		return groupAssessment
	case strings.Contains(lower, "cycle") || strings.Contains(lower, "tracking"):
		return groupCycle
	case strings.Contains(lower, "test") || strings.Contains(lower, "diagnostic"):
		return groupTesting
	case strings.Contains(lower, "partner") || strings.Contains(lower, "support"):
		return groupPartner
	default:
		return groupDefault
	}
}

// SuggestReplies returns up to 3 canned follow-up prompts for the last
// assistant message, in the given language. Pure function: identical inputs
// always yield identical output.
func SuggestReplies(lastAssistantText string, language api.Language) []string {
	group := matchGroup(strings.ToLower(lastAssistantText))

	variants := quickReplies[group]
	replies, ok := variants[language]
	if !ok {
		replies = variants[api.LanguageEnglish]
	}

	out := make([]string, len(replies))
	copy(out, replies)
	return out
}
